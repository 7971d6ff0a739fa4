package results

import (
	"testing"
)

func TestRecorder_AppendOnlyOrder(t *testing.T) {
	r := NewRecorder()
	r.Passf("data_loading", "loaded %d nodes", 10)
	r.Failf("node_classification", "found 0 origins")
	r.Warnf("dangling_edges", "dropped %d edges", 2)

	outcomes := r.Outcomes()
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	if outcomes[0].Name != "data_loading" || outcomes[0].Status != StatusPassed {
		t.Errorf("outcomes[0] = %+v", outcomes[0])
	}
	if outcomes[1].Status != StatusFailed {
		t.Errorf("outcomes[1] = %+v", outcomes[1])
	}
	if outcomes[2].Status != StatusWarning {
		t.Errorf("outcomes[2] = %+v", outcomes[2])
	}
	if outcomes[0].Message != "loaded 10 nodes" {
		t.Errorf("message = %q", outcomes[0].Message)
	}
}

func TestRecorder_OutcomesReturnsCopy(t *testing.T) {
	r := NewRecorder()
	r.Passf("a", "ok")

	outcomes := r.Outcomes()
	outcomes[0].Name = "mutated"

	if r.Outcomes()[0].Name != "a" {
		t.Error("Outcomes() must return an independent copy")
	}
}

func TestOutcome_Line(t *testing.T) {
	o := Outcome{Name: "pathway_integrity", Status: StatusPassed, Message: "Found 4 complete pathways"}
	want := "pathway_integrity\tpassed\tFound 4 complete pathways"
	if got := o.Line(); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestRecorder_Passed(t *testing.T) {
	r := NewRecorder()
	r.Failf("flaky_check", "first attempt")
	r.Passf("flaky_check", "second attempt")

	if !r.Passed("flaky_check") {
		t.Error("Passed should be true when any record passed")
	}
	if r.Passed("missing") {
		t.Error("Passed should be false for unknown names")
	}
}

func TestRecorder_Summarize(t *testing.T) {
	r := NewRecorder()
	r.Passf("a", "ok")
	r.Passf("b", "ok")
	r.Failf("c", "bad")
	r.Warnf("d", "meh")
	r.Passf("a", "recorded twice, counted once")

	summary := r.Summarize()
	if summary.Total != 4 {
		t.Errorf("Total = %d, want 4", summary.Total)
	}
	if summary.Passed != 2 {
		t.Errorf("Passed = %d, want 2", summary.Passed)
	}
	if summary.String() != "2/4 checks passed" {
		t.Errorf("String() = %q", summary.String())
	}
}

func TestRecorder_Empty(t *testing.T) {
	r := NewRecorder()
	summary := r.Summarize()
	if summary.Total != 0 || summary.Passed != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
	if len(r.Outcomes()) != 0 {
		t.Error("empty recorder should have no outcomes")
	}
}
