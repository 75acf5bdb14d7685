//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "inventory-api"
	ConsumerName = "inventory-portal"

	StateNoProducts     = "no products onboarded"
	StateSKUTaken       = "product with SKU PACT-PEAR already onboarded"
	StateStockedProduct = "a stocked product is available"
	StateOrderMissing   = "no order with the requested id exists"
)

const (
	// StockedProductID is the fixed id the provider seeds for order flows so the
	// consumer can reference it in request bodies.
	StockedProductID = "2f9a6c1e-5b7d-4c3e-9a1f-8d2b4e6c0a13"
	MissingOrderID   = "7b0f3c4e-8a4e-4f6e-9c7d-1d2e3f4a5b6c"

	AppleSKU = "PACT-APPLE"
	PearSKU  = "PACT-PEAR"
)

// ExampleProductSubmission provides stable onboarding data for pact interactions.
func ExampleProductSubmission(sku string) map[string]any {
	return map[string]any{
		"name":  "Pact " + sku,
		"sku":   sku,
		"price": "4.25",
		"stock": 25,
	}
}

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the inventory portal consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
