package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			key TEXT PRIMARY KEY,
			xp INTEGER DEFAULT 0,
			gold INTEGER DEFAULT 0,
			level INTEGER DEFAULT 1,
			rank TEXT DEFAULT 'E',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS habits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			identity TEXT NOT NULL,
			obvious_cue TEXT,
			attractive_bundle TEXT,
			easy_step TEXT NOT NULL,
			satisfying_reward TEXT,
			schedule TEXT NOT NULL DEFAULT 'daily',
			category TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// One checkin per habit per calendar day; marking a day again
		// overwrites via upsert.
		`CREATE TABLE IF NOT EXISTS checkins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			habit_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			status TEXT NOT NULL,
			fast INTEGER DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(habit_id, date),
			FOREIGN KEY(habit_id) REFERENCES habits(id)
		);`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			name TEXT NOT NULL,
			rarity TEXT NOT NULL,
			effect_type TEXT,
			effect_value INTEGER,
			effect_category TEXT,
			UNIQUE(type, name)
		);`,
		`CREATE TABLE IF NOT EXISTS user_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			item_id INTEGER NOT NULL UNIQUE,
			equipped INTEGER DEFAULT 0,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(item_id) REFERENCES items(id)
		);`,
		`CREATE TABLE IF NOT EXISTS quest_pool (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL UNIQUE,
			description TEXT,
			category TEXT NOT NULL,
			xp_reward INTEGER NOT NULL,
			gold_reward INTEGER NOT NULL,
			is_active INTEGER DEFAULT 1
		);`,
		`CREATE TABLE IF NOT EXISTS daily_quests (
			id TEXT PRIMARY KEY,
			quest_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			completed INTEGER DEFAULT 0,
			completed_at DATETIME,
			FOREIGN KEY(quest_id) REFERENCES quest_pool(id)
		);`,
		// One row per day the user spent their quest refresh.
		`CREATE TABLE IF NOT EXISTS quest_refreshes (
			date TEXT PRIMARY KEY,
			refreshed_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		// Append-only audit of every XP/gold delta.
		`CREATE TABLE IF NOT EXISTS reward_ledger (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			habit_id INTEGER,
			quest_id TEXT,
			xp_delta INTEGER NOT NULL,
			gold_delta INTEGER NOT NULL,
			reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS daily_summary (
			date TEXT PRIMARY KEY,
			completed_count INTEGER DEFAULT 0,
			scheduled_count INTEGER DEFAULT 0,
			cleared INTEGER DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_habit_date ON checkins(habit_id, date);`,
		`CREATE INDEX IF NOT EXISTS idx_checkins_date ON checkins(date);`,
		`CREATE INDEX IF NOT EXISTS idx_daily_quests_date ON daily_quests(date);`,
		`CREATE INDEX IF NOT EXISTS idx_reward_ledger_date ON reward_ledger(date);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if err := seedItems(ctx, db); err != nil {
		return err
	}
	return seedQuestPool(ctx, db)
}

// seedItems fills the collectible catalog. INSERT OR IGNORE keeps reruns
// idempotent against the UNIQUE(type, name) constraint.
func seedItems(ctx context.Context, db *sql.DB) error {
	type seed struct {
		typ, name, rarity          string
		effectType, effectCategory *string
		effectValue                *int
	}
	str := func(s string) *string { return &s }
	num := func(n int) *int { return &n }

	seeds := []seed{
		{typ: "title", name: "The Persistent", rarity: "common"},
		{typ: "title", name: "Never Miss Twice", rarity: "rare"},
		{typ: "title", name: "2-Min Starter", rarity: "common"},
		{typ: "title", name: "Streak Keeper", rarity: "rare"},
		{typ: "title", name: "Daily Warrior", rarity: "common"},
		{typ: "title", name: "Quest Master", rarity: "epic"},
		{typ: "title", name: "Dungeon Conqueror", rarity: "epic"},
		{typ: "title", name: "The Awakened", rarity: "legendary"},

		{typ: "badge", name: "Bronze Shield", rarity: "common"},
		{typ: "badge", name: "Silver Sword", rarity: "rare"},
		{typ: "badge", name: "Gold Crown", rarity: "epic"},
		{typ: "badge", name: "Diamond Star", rarity: "legendary"},

		{typ: "theme", name: "midnight", rarity: "rare"},
		{typ: "theme", name: "crimson", rarity: "epic"},
		{typ: "theme", name: "aurora", rarity: "legendary"},

		{typ: "artifact", name: "Ember Charm", rarity: "rare", effectType: str("xp_boost"), effectValue: num(5)},
		{typ: "artifact", name: "Scholar's Lens", rarity: "epic", effectType: str("xp_boost"), effectValue: num(10)},
		{typ: "artifact", name: "Gilded Dice", rarity: "rare", effectType: str("gold_boost"), effectValue: num(10)},
		{typ: "artifact", name: "Runner's Band", rarity: "rare", effectType: str("category_xp_boost"), effectValue: num(10), effectCategory: str("fitness")},
		{typ: "artifact", name: "Quill of Focus", rarity: "epic", effectType: str("category_xp_boost"), effectValue: num(10), effectCategory: str("learning")},
		{typ: "artifact", name: "Soft Landing", rarity: "epic", effectType: str("skip_penalty_reduce"), effectValue: num(25)},
		{typ: "artifact", name: "Hourglass Shard", rarity: "legendary", effectType: str("streak_buffer"), effectValue: num(1)},
	}

	for _, s := range seeds {
		_, err := db.ExecContext(ctx, `
			INSERT OR IGNORE INTO items (type, name, rarity, effect_type, effect_value, effect_category)
			VALUES (?, ?, ?, ?, ?, ?)
		`, s.typ, s.name, s.rarity, s.effectType, s.effectValue, s.effectCategory)
		if err != nil {
			return fmt.Errorf("seed items: %w", err)
		}
	}
	return nil
}

func seedQuestPool(ctx context.Context, db *sql.DB) error {
	type seed struct {
		title, description, category string
		xp, gold                     int
	}
	seeds := []seed{
		{"Drink 8 glasses of water", "Stay hydrated through the day", "wellness", 15, 5},
		{"10-minute walk", "Get outside and move", "fitness", 15, 5},
		{"Stretch for 5 minutes", "Loosen up before or after work", "fitness", 10, 4},
		{"Inbox zero sprint", "Clear your inbox for 15 minutes", "productivity", 20, 8},
		{"Plan tomorrow tonight", "Write down tomorrow's top 3 tasks", "productivity", 15, 6},
		{"Read 10 pages", "Any book counts", "learning", 20, 8},
		{"Learn one new word", "Look it up and use it in a sentence", "learning", 10, 4},
		{"Message a friend", "Check in on someone you haven't talked to", "social", 15, 6},
		{"Give a genuine compliment", "Make someone's day", "social", 10, 4},
		{"Doodle for 5 minutes", "No judgment, just draw", "creativity", 10, 4},
		{"Write 3 sentences in a journal", "Capture today before it fades", "creativity", 15, 6},
		{"No phone for the first hour", "Start the morning on your terms", "wellness", 25, 10},
	}

	for _, s := range seeds {
		_, err := db.ExecContext(ctx, `
			INSERT OR IGNORE INTO quest_pool (title, description, category, xp_reward, gold_reward, is_active)
			VALUES (?, ?, ?, ?, ?, 1)
		`, s.title, s.description, s.category, s.xp, s.gold)
		if err != nil {
			return fmt.Errorf("seed quest pool: %w", err)
		}
	}
	return nil
}
