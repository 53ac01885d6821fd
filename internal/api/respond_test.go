package api

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total      int64
		page, lim  int
		totalPages int64
	}{
		{25, 2, 10, 3},
		{30, 1, 10, 3},
		{0, 1, 10, 0},
		{1, 1, 10, 1},
		{9, 1, 0, 0},
	}
	for _, c := range cases {
		p := NewPagination(c.total, c.page, c.lim)
		if p.TotalPages != c.totalPages {
			t.Errorf("NewPagination(%d, %d, %d).TotalPages = %d, want %d",
				c.total, c.page, c.lim, p.TotalPages, c.totalPages)
		}
		if p.Page != c.page || p.Limit != c.lim || p.Total != c.total {
			t.Errorf("pagination fields not carried through: %+v", p)
		}
	}
}

func TestBindError_FieldDetails(t *testing.T) {
	type req struct {
		Title string   `validate:"required,min=10,max=300"`
		Tags  []string `validate:"min=1,max=5"`
		Email string   `validate:"email"`
	}
	v := validator.New()
	err := v.Struct(req{Title: "short", Email: "not-an-email"})
	if err == nil {
		t.Fatal("expected validation failure")
	}

	e := BindError(err)
	if e.Code != CodeValidation {
		t.Fatalf("code = %s", e.Code)
	}
	fields, ok := e.Details["errors"].([]FieldError)
	if !ok {
		t.Fatalf("details: %+v", e.Details)
	}

	byPath := map[string]string{}
	for _, f := range fields {
		byPath[f.Path] = f.Message
	}
	if byPath["title"] != "must be at least 10 characters" {
		t.Errorf("title message: %q", byPath["title"])
	}
	if byPath["tags"] != "must have at least 1 items" {
		t.Errorf("tags message: %q", byPath["tags"])
	}
	if byPath["email"] != "must be a valid email address" {
		t.Errorf("email message: %q", byPath["email"])
	}
}

func TestBindError_NonValidatorError(t *testing.T) {
	e := BindError(errInvalidJSON{})
	if e.Code != CodeValidation || e.Message != "invalid request body" || e.Details != nil {
		t.Fatalf("generic binding error: %+v", e)
	}
}

type errInvalidJSON struct{}

func (errInvalidJSON) Error() string { return "unexpected EOF" }

func TestCodeStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:  400,
		CodeAuth:        401,
		CodeNotFound:    404,
		CodeConflict:    409,
		CodeRateLimited: 429,
		CodeIntegration: 502,
		CodeInternal:    500,
		Code("SOMETHING_NEW"): 500,
	}
	for code, want := range cases {
		if got := code.Status(); got != want {
			t.Errorf("%s.Status() = %d, want %d", code, got, want)
		}
	}
}
