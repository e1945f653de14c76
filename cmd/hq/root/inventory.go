package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newInventoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Show owned items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			owned, err := svc.Inventory(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChest, fmt.Sprintf("Inventory (%d)", len(owned))))
			if len(owned) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("Nothing yet. Items drop from habit completions."))
				return nil
			}
			for _, ui2 := range owned {
				mark := "   "
				if ui2.Equipped {
					mark = ui.Good.Render("[E]")
				}
				fmt.Fprintf(out, "%s #%d %s %s %s\n", mark, ui2.ItemID, ui2.Item.Name,
					ui.RarityText(ui2.Item.Rarity), ui.Muted.Render("("+ui2.Item.Type+")"))
				if ui2.Item.EffectType != nil && ui2.Item.EffectValue != nil {
					eff := fmt.Sprintf("%s %d", *ui2.Item.EffectType, *ui2.Item.EffectValue)
					if ui2.Item.EffectCategory != nil {
						eff += " (" + *ui2.Item.EffectCategory + ")"
					}
					fmt.Fprintf(out, "    %s\n", ui.Dim.Render(eff))
				}
			}
			return nil
		},
	}

	cmd.AddCommand(newEquipCmd(), newUnequipCmd())

	return cmd
}

func newEquipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equip <item-id>",
		Short: "Equip an owned item (one per slot)",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			item, err := svc.Equip(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconArtifact+" Equipped"), item.Name, ui.Muted.Render("("+item.Type+")"))
			return nil
		},
	}

	return cmd
}

func newUnequipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unequip <item-id>",
		Short: "Unequip an item",
		Args:  idArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			item, err := svc.Unequip(ctx, parseID(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Warn.Render("Unequipped"), item.Name)
			return nil
		},
	}

	return cmd
}
