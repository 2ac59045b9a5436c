package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/gamevault/storefront-backend/pkg/errors"
)

type addItemBody struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,min=1,max=10"`
}

func TestDecodeJSONBody(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"product_id":3,"quantity":2}`))
	var body addItemBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.ProductID != 3 || body.Quantity != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestDecodeJSONBodyRejectsUnknownFieldsAndInvalidValues(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"product_id":3,"color":"red"}`))
	var body addItemBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for unknown field, got %v", err)
	}

	req = httptest.NewRequest("POST", "/", strings.NewReader(`{"product_id":0,"quantity":11}`))
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["product_id"] != "is required" || details["quantity"] != "must be at most 10" {
		t.Fatalf("unexpected details %#v", typed.Details())
	}
}

func TestDecodeJSONBodyRejectsMalformedInput(t *testing.T) {
	cases := map[string]string{
		"empty":          "",
		"syntax":         `{"product_id":`,
		"wrong type":     `{"product_id":"three"}`,
		"trailing value": `{"product_id":3} {"product_id":4}`,
		"oversized":      `{"product_id":3,"pad":"` + strings.Repeat("x", MaxBodyBytes) + `"}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(raw))
			var body addItemBody
			if err := DecodeJSONBody(req, &body); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestQueryPrefixed(t *testing.T) {
	req := httptest.NewRequest("GET", "/?option.edition=%20deluxe%20&option.=x&other=1", nil)
	got, err := QueryPrefixed(req, "option.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got["edition"] != "deluxe" {
		t.Fatalf("unexpected options %#v", got)
	}

	req = httptest.NewRequest("GET", "/?option.edition="+strings.Repeat("x", 65), nil)
	if _, err := QueryPrefixed(req, "option."); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?page=2&size=abc&limit=99", nil)
	if v, err := ParseQueryInt(req, "page", 1, 1, 10); err != nil || v != 2 {
		t.Fatalf("expected 2, got %d (%v)", v, err)
	}
	if v, err := ParseQueryInt(req, "missing", 7, 1, 10); err != nil || v != 7 {
		t.Fatalf("expected default, got %d (%v)", v, err)
	}
	if _, err := ParseQueryInt(req, "size", 1, 1, 10); err == nil {
		t.Fatal("expected numeric error")
	}
	if _, err := ParseQueryInt(req, "limit", 1, 1, 10); err == nil {
		t.Fatal("expected range error")
	}
}

func TestParsePathID(t *testing.T) {
	if id, err := ParsePathID(" 12 ", "productId"); err != nil || id != 12 {
		t.Fatalf("expected 12, got %d (%v)", id, err)
	}
	for _, raw := range []string{"", "0", "-3", "abc"} {
		if _, err := ParsePathID(raw, "productId"); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	cases := map[string]struct {
		in   string
		max  int
		want string
	}{
		"trims and truncates": {"  headset  ", 4, "head"},
		"folds whitespace":    {"gaming \t\n  mouse", 0, "gaming mouse"},
		"drops control chars": {"key\x00board", 0, "key board"},
		"truncates by rune":   {"écran géant", 5, "écran"},
		"no trailing space":   {"ab cd", 3, "ab"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := SanitizeString(tc.in, tc.max); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
