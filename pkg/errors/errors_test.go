package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	cases := map[Code]int{
		CodeValidation: http.StatusBadRequest,
		CodeNotFound:   http.StatusNotFound,
		CodeConflict:   http.StatusConflict,
		CodeInternal:   http.StatusInternalServerError,
		CodeDependency: http.StatusServiceUnavailable,
	}
	for code, want := range cases {
		if got := MetadataFor(code).HTTPStatus; got != want {
			t.Fatalf("code %s: expected status %d got %d", code, want, got)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("SOMETHING_ELSE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal fallback, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeDependency, cause, "load items")
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("expected dependency code, got %s", err.Code())
	}
}

func TestAsExtractsTypedError(t *testing.T) {
	err := New(CodeNotFound, "inventory item not found")
	if typed := As(err); typed == nil || typed.Code() != CodeNotFound {
		t.Fatalf("expected typed not found error, got %v", typed)
	}
	if typed := As(errors.New("plain")); typed != nil {
		t.Fatalf("expected nil for untyped error, got %v", typed)
	}
}

func TestDumpBuildsChain(t *testing.T) {
	err := Wrap(CodeDependency, errors.New("disk full"), "insert item")
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("expected dependency code in dump, got %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(dump.Chain))
	}
}
