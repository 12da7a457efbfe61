//-------------------------------------------------------------------------
//
// defectaudit - Inventory Defect Analysis
//
// Copyright (c) 2026, the defectaudit authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRunInOrder(t *testing.T) {
	var order []string
	step := func(name string) Stage {
		return Stage{Name: name, Run: func(context.Context) error {
			order = append(order, name)
			return nil
		}}
	}

	r, err := New(step("generate"), step("load"), step("report"))
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := strings.Join(order, ","); got != "generate,load,report" {
		t.Errorf("execution order = %s", got)
	}

	results := r.Results()
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("stage %q recorded error: %v", res.Name, res.Err)
		}
	}
}

func TestRunStopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	ran := map[string]bool{}
	mk := func(name string, err error) Stage {
		return Stage{Name: name, Run: func(context.Context) error {
			ran[name] = true
			return err
		}}
	}

	r, err := New(mk("a", nil), mk("b", boom), mk("c", nil))
	if err != nil {
		t.Fatal(err)
	}

	runErr := r.Run(context.Background())
	if !errors.Is(runErr, boom) {
		t.Fatalf("Run error = %v, want wrapped boom", runErr)
	}
	if !ran["a"] || !ran["b"] {
		t.Error("stages before the failure did not run")
	}
	if ran["c"] {
		t.Error("stage after the failure still ran")
	}

	results := r.Results()
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[1].Err == nil {
		t.Error("failed stage recorded no error")
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	r, err := New(
		Stage{Name: "first", Run: func(context.Context) error {
			cancel()
			return nil
		}},
		Stage{Name: "second", Run: func(context.Context) error {
			t.Error("second stage ran after cancellation")
			return nil
		}},
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := r.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(); err == nil {
		t.Error("empty pipeline accepted")
	}
	if _, err := New(Stage{Name: "", Run: func(context.Context) error { return nil }}); err == nil {
		t.Error("unnamed stage accepted")
	}
	if _, err := New(Stage{Name: "x"}); err == nil {
		t.Error("stage without run function accepted")
	}
}
