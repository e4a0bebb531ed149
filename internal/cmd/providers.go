package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cameronsjo/stevedore/internal/build"
	"github.com/cameronsjo/stevedore/internal/manifest"
	"github.com/cameronsjo/stevedore/internal/provider"
	"github.com/cameronsjo/stevedore/internal/ui"
)

// providersCmd lists the registered providers and languages.
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List providers, templates, and strategies",
	Long: `List every registered cloud provider with its pod template and
deployment strategy, plus the supported build languages.

A provider missing either half of its registration is reported as an
error; runs against it would fail.`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	store := manifest.DefaultStore()
	registry := provider.Default()

	ui.Header("Providers")
	for _, key := range registry.Keys() {
		marker := "strategy + template"
		if !hasTemplate(store, key) {
			marker = "strategy only"
		}
		fmt.Printf("  %-8s %s\n", key, marker)
	}
	for _, key := range store.Providers() {
		if !registry.Supports(key) {
			fmt.Printf("  %-8s template only\n", key)
		}
	}

	ui.Header("Languages")
	for _, lang := range build.Default().Languages() {
		steps, err := build.Default().Resolve(lang)
		if err != nil {
			return err
		}
		fmt.Printf("  %-8s %d build step(s)\n", lang, len(steps))
	}

	problems := registry.CheckConsistency(store)
	for _, problem := range problems {
		ui.Error("%v", problem)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d provider registration problem(s)", len(problems))
	}

	return nil
}

func hasTemplate(store *manifest.Store, key string) bool {
	_, err := store.Resolve(key)
	return err == nil
}
