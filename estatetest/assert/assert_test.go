package assert

import (
	"testing"

	"github.com/iov-one/estate/errors"
)

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		ErrWant  *errors.Error
		ErrGot   error
		WantFail bool
	}{
		"same error": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.ErrEmpty,
			WantFail: false,
		},
		"compared to nil": {
			ErrWant:  nil,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
		"both nil": {
			ErrWant:  nil,
			ErrGot:   nil,
			WantFail: false,
		},
		"wrapped": {
			ErrWant:  errors.ErrEmpty,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"category of a wrapped child": {
			ErrWant:  errors.ErrInput,
			ErrGot:   errors.Wrap(errors.ErrEmpty, "test"),
			WantFail: false,
		},
		"different error": {
			ErrWant:  errors.ErrNotFound,
			ErrGot:   errors.ErrEmpty,
			WantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.ErrWant, tc.ErrGot)
			failed := mock.failcalls > 0
			if tc.WantFail != failed {
				t.Fatalf("unlexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestNil(t *testing.T) {
	var nilmap map[string]int
	mock := &tmock{TB: t}
	Nil(mock, nilmap)
	Nil(mock, nil)
	if mock.failcalls != 0 {
		t.Fatalf("want no failure, got %d", mock.failcalls)
	}
	Nil(mock, 0)
	if mock.failcalls != 1 {
		t.Fatalf("a non nillable value must fail, got %d", mock.failcalls)
	}
}

// tmock is a mock for testing.TB that count failure calls instead of
// failing the test.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
