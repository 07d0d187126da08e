// Command build defines the project's development tasks.
//
//	go run ./build test
package main

import (
	"os"
	"os/exec"

	"github.com/goyek/goyek/v2"
)

func run(a *goyek.A, name string, args ...string) {
	a.Helper()
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		a.Error(err)
	}
}

var vet = goyek.Define(goyek.Task{
	Name:  "vet",
	Usage: "Run go vet on all packages",
	Action: func(a *goyek.A) {
		run(a, "go", "vet", "./...")
	},
})

var test = goyek.Define(goyek.Task{
	Name:  "test",
	Usage: "Run unit tests",
	Action: func(a *goyek.A) {
		run(a, "go", "test", "./...")
	},
})

var integration = goyek.Define(goyek.Task{
	Name:  "integration",
	Usage: "Run integration tests against fake tools",
	Action: func(a *goyek.A) {
		run(a, "go", "test", "-tags", "integration", "./test/integration/...")
	},
})

var validateCatalog = goyek.Define(goyek.Task{
	Name:  "validate-catalog",
	Usage: "Validate the built-in catalog against the catalog schema",
	Action: func(a *goyek.A) {
		run(a, "go", "run", ".", "catalog", "validate", "internal/catalog/builtin.yaml")
	},
})

var _ = goyek.Define(goyek.Task{
	Name:  "all",
	Usage: "Run vet, tests and catalog validation",
	Deps:  goyek.Deps{vet, test, integration, validateCatalog},
})

func main() {
	goyek.Main(os.Args[1:])
}
