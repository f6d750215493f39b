package bdd

import (
	"os"
	"testing"

	"github.com/andrescamacho/stellar-hauler/test/bdd/steps"
	"github.com/andrescamacho/stellar-hauler/test/helpers"
	"github.com/cucumber/godog"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Pricing steps are pure domain; game steps drive the controller through the mediator
	steps.InitializePricingScenario(sc)
	steps.InitializeGameScenario(sc)
}

func TestMain(m *testing.M) {
	// One in-memory database for every scenario; game steps truncate it in their Before hook
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}
	defer helpers.CloseSharedTestDB()

	os.Exit(m.Run())
}
