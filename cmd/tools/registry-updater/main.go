// cmd/tools/registry-updater/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"sql-dashboard/pkg/registry"
)

// registry-updater maintains the task registry JSON used to override the
// built-in API schemas. "export" dumps the built-in registry so it can be
// edited; "validate" checks an edited file before deployment.
func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	exportPath := exportCmd.String("path", "configs/task-registry.json", "Destination file for the built-in registry")
	validatePath := validateCmd.String("path", "configs/task-registry.json", "Path to registry file")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		if err := exportRegistry(*exportPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry exported to %s\n", *exportPath)

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateRegistry(*validatePath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registry at %s is valid\n", *validatePath)

	default:
		help()
		os.Exit(1)
	}
}

func exportRegistry(path string) error {
	reg := registry.DefaultRegistry()

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	return os.WriteFile(path, data, 0o644)
}

func validateRegistry(path string) error {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}

	if reg.Version == "" {
		return fmt.Errorf("registry version is empty")
	}

	seen := map[string]bool{}
	for _, task := range reg.Tasks {
		if task.ID == "" {
			return fmt.Errorf("task with empty id")
		}
		if seen[task.ID] {
			return fmt.Errorf("duplicate task id %q", task.ID)
		}
		seen[task.ID] = true

		if len(task.InputSchema) == 0 {
			return fmt.Errorf("task %q has no input schema", task.ID)
		}
	}

	// Every built-in task must still be present after editing.
	for _, builtin := range registry.DefaultRegistry().Tasks {
		if !seen[builtin.ID] {
			return fmt.Errorf("required task %q is missing", builtin.ID)
		}
	}

	fmt.Printf("Checked %d tasks\n", len(reg.Tasks))
	return nil
}

func help() {
	fmt.Println("Usage:")
	fmt.Println("  registry-updater export   [-path configs/task-registry.json]")
	fmt.Println("  registry-updater validate [-path configs/task-registry.json]")
}
