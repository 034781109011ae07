package testconfig

import (
	"os"
	"testing"
)

const (
	PARALLEL_TESTS_ENV_VAR = "OBSCOLL_PARALLEL_TESTS"
)

var (
	//containers are not thread safe but distinct tests never share one, so tests can run in parallel.
	PARALLELIZE_SAME_PKG_TESTS = os.Getenv(PARALLEL_TESTS_ENV_VAR) == "1"
)

func AllowParallelization(t *testing.T) {
	if PARALLELIZE_SAME_PKG_TESTS {
		t.Parallel()
	}
}
