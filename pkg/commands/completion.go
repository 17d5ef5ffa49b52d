package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/appoverrides/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(appoverrides completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(appoverrides completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// appCompletions offers overridden and installed app ids.
func appCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, _, err := loadService(completionContext(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	seen := map[string]struct{}{}
	var out []string
	addID := func(id, desc string) {
		if _, ok := seen[id]; ok || !strings.HasPrefix(id, toComplete) {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id+"\t"+desc)
	}
	for _, e := range svc.Store.All() {
		addID(e.AppID, e.Subtitle())
	}
	if cands, err := svc.Candidates(completionContext(cmd)); err == nil {
		for _, a := range cands {
			addID(a.ID, a.Name())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// overrideCompletions offers app ids that have an override.
func overrideCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	sink, err := store.Load(cfg)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	sink.Diagnostics = nil
	entries, err := sink.LoadAll(completionContext(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, e := range entries {
		if strings.HasPrefix(e.AppID, toComplete) {
			out = append(out, e.AppID+"\t"+e.Subtitle())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// candidateCompletions offers installed apps without an override.
func candidateCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc, _, err := loadService(completionContext(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cands, err := svc.Candidates(completionContext(cmd))
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, a := range cands {
		if strings.HasPrefix(a.ID, toComplete) {
			out = append(out, a.ID+"\t"+a.Name())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completionContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
