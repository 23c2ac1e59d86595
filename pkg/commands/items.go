package commands

import (
	"fmt"

	"github.com/arthur-debert/dotgen/pkg/links"
	"github.com/arthur-debert/dotgen/pkg/types"
	"github.com/arthur-debert/dotgen/pkg/ui/converter"
	"github.com/arthur-debert/dotgen/pkg/ui/display"
)

// ConfigList reports the link state of every configured item. Extra items
// are listed even when the install is minimal.
func ConfigList(env *Env) (*display.CommandResult, error) {
	if err := env.RequireInstalled(); err != nil {
		return nil, err
	}
	rec := env.reconciler()

	statuses := make([]types.ItemStatus, 0)
	for _, it := range rec.AllItems() {
		statuses = append(statuses, rec.Status(it))
	}

	out := converter.Result("config list", "")
	if !env.Paths.IsFullInstall() && len(env.Config.Items.Extra) > 0 {
		out.Message = "[muted]Minimal install: extra items are not deployed by update or rollback.[/muted]"
	}
	out.Items = converter.Items(statuses, nil)
	return out, nil
}

// ConfigEnable links one item.
func ConfigEnable(env *Env, name string) (*display.CommandResult, error) {
	return toggle(env, name, "enable", (*links.Reconciler).Enable)
}

// ConfigDisable removes one item's link.
func ConfigDisable(env *Env, name string) (*display.CommandResult, error) {
	return toggle(env, name, "disable", (*links.Reconciler).Disable)
}

func toggle(env *Env, name, verb string, op func(*links.Reconciler, types.ManagedItem) error) (*display.CommandResult, error) {
	if err := env.RequireInstalled(); err != nil {
		return nil, err
	}
	rec := env.reconciler()

	item, err := rec.Lookup(name)
	if err != nil {
		return nil, err
	}
	before := rec.State(item)
	if err := op(rec, item); err != nil {
		return nil, err
	}
	after := rec.Status(item)

	msg := fmt.Sprintf("[bold]%s[/bold] is already %s.", name, after.State)
	if after.State != before {
		msg = fmt.Sprintf("%sd [bold]%s[/bold].", capitalize(verb), name)
	}
	out := converter.Result("config "+verb, msg)
	out.Items = converter.Items([]types.ItemStatus{after}, nil)
	return out, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
