// batch_test.go tests the bounded-parallel batch parsing helpers.
package labeltree

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	lterrors "github.com/labeltree/labeltree/errors"
)

func TestParseLabelPathsOrder(t *testing.T) {
	inputs := make([]string, 500)
	for i := range inputs {
		inputs[i] = fmt.Sprintf("batch.item%d.leaf", i)
	}
	paths, err := ParseLabelPaths(context.Background(), inputs, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != len(inputs) {
		t.Fatalf("got %d paths, want %d", len(paths), len(inputs))
	}
	for i, p := range paths {
		if p.String() != inputs[i] {
			t.Errorf("result %d = %q, want %q", i, p.String(), inputs[i])
		}
	}
}

func TestParseLabelPathsError(t *testing.T) {
	inputs := []string{"ok.a", "bad.", "ok.b"}
	_, err := ParseLabelPaths(context.Background(), inputs, 2)
	if !errors.Is(err, lterrors.ErrSyntax) {
		t.Fatalf("got %v, want ErrSyntax", err)
	}
	if !strings.Contains(err.Error(), "input 1") {
		t.Errorf("error %q should name the failing input", err.Error())
	}
}

func TestParseLabelPatternsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	inputs := make([]string, 100)
	for i := range inputs {
		inputs[i] = "a|b.*"
	}
	_, err := ParseLabelPatterns(ctx, inputs, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestParseLabelPatternsDefaultWorkers(t *testing.T) {
	qs, err := ParseLabelPatterns(context.Background(), []string{"a.b", "!x|y.*{2,5}"}, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(qs) != 2 || qs[1].String() != "!x|y.*{2,5}" {
		t.Errorf("unexpected batch result")
	}
}
