package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestStatus(t *testing.T) {
	if got := Status(nil); got != "success" {
		t.Errorf("Status(nil) = %q", got)
	}
	if got := Status(errors.New("boom")); got != "failure" {
		t.Errorf("Status(err) = %q", got)
	}
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(AnswersRecorded.WithLabelValues("true"))
	AnswersRecorded.WithLabelValues("true").Inc()
	if got := testutil.ToFloat64(AnswersRecorded.WithLabelValues("true")); got != before+1 {
		t.Errorf("answers counter = %v, want %v", got, before+1)
	}
}
