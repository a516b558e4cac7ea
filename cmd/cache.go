package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/jcdickinson/doclinks/internal/config"
	"github.com/jcdickinson/doclinks/internal/index"
	"github.com/spf13/cobra"
)

func openStore() index.Store {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	store, err := index.NewStore(cfg.CacheDir)
	if err != nil {
		log.Fatalf("failed to open cache: %v", err)
	}
	return store
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Remove every cached element-list and package-list",
	Run:   runClearCache,
}

func runClearCache(cmd *cobra.Command, args []string) {
	store := openStore()
	if err := store.Clear(); err != nil {
		log.Fatalf("failed to clear cache: %v", err)
	}
	fmt.Printf("cleared %s\n", store.Root)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cached index files",
	Run:   runStatus,
}

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) {
	store := openStore()
	slots, err := store.List()
	if err != nil {
		log.Fatalf("status failed: %v", err)
	}

	if statusJSON {
		out, _ := json.MarshalIndent(slots, "", "  ")
		fmt.Println(string(out))
		return
	}

	fmt.Printf("cache: %s\n", store.Root)
	if len(slots) == 0 {
		fmt.Println("no components cached")
		return
	}
	for _, s := range slots {
		state := "complete"
		switch {
		case s.ElementList && s.PackageList:
		case s.ElementList || s.PackageList:
			state = "partial"
		default:
			state = "empty"
		}
		fmt.Printf("  %s [%s]\n", s.ID, state)
	}
}

var showCmd = &cobra.Command{
	Use:     "show <group:name:version>",
	Short:   "Print the cached index of a component",
	Example: `  doclinks show org.slf4j:slf4j-api:1.7.36`,
	Args:    cobra.ExactArgs(1),
	Run:     runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	id, err := component.ParseID(args[0])
	if err != nil {
		log.Fatalf("%v", err)
	}
	data, err := openStore().Read(id)
	if err != nil {
		log.Fatalf("show failed: %v", err)
	}
	os.Stdout.Write(data)
}
