package api_test

import (
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-fieldcheck/api"
	"github.com/lithictech/go-fieldcheck/logctx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/rgalanakis/golangal"
	"net/http"
	"net/http/httptest"
	"strings"
)

var _ = Describe("field routes", func() {
	var e *echo.Echo

	BeforeEach(func() {
		logger, _ := logctx.NewNullLogger()
		e = api.New(api.Config{Logger: logger})
		api.RegisterFieldRoutes(e.Group("/v1"), api.FieldRoutesConfig{Parallelism: 2})
	})

	post := func(path, body string) *httptest.ResponseRecorder {
		return serve(e, newRequest(http.MethodPost, "/v1"+path, body))
	}

	Describe("POST /fields/check", func() {
		It("returns a valid result", func() {
			rr := post("/fields/check", `{"name": "qty", "type": "number", "value": 4, "min": 1, "max": 10}`)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("name", "qty"),
				HaveKeyWithValue("kind", "numeric"),
				HaveKeyWithValue("value", "4"),
				HaveKeyWithValue("valid", true),
				HaveKeyWithValue("errors", BeEmpty()),
			)))
		})

		It("returns an invalid result with messages as a 200", func() {
			rr := post("/fields/check", `{"name": "qty", "type": "number", "value": "12", "max": 10, "step": 5}`)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("valid", false),
				HaveKeyWithValue("errors", ConsistOf(
					"not a valid step of 5",
					"not below maximum of 10",
				)),
			)))
		})

		It("reports required email fields", func() {
			rr := post("/fields/check", `{"name": "contact", "type": "email", "required": true}`)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("errors", ConsistOf(
				"required field is empty",
				"not a valid email address",
			))))
		})

		It("resolves select values from options", func() {
			rr := post("/fields/check", `{
				"name": "size", "type": "select", "required": true,
				"options": [{"value": "s", "text": "Small"}, {"text": "Large", "selected": true}]
			}`)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("value", "Large"),
				HaveKeyWithValue("valid", true),
			)))
		})

		It("returns invalid_descriptor with details for a bad descriptor", func() {
			rr := post("/fields/check", `{"name": "qty", "type": "number", "min": "abc", "pattern": "("}`)
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("error_code", "invalid_descriptor"),
				HaveKeyWithValue("details", And(
					HaveKeyWithValue("Min", ConsistOf("not a number")),
					HaveKey("Pattern"),
				)),
			)))
		})

		It("accepts date bounds on date fields", func() {
			rr := post("/fields/check", `{"name": "d", "type": "date", "value": "2020-01-02", "min": "2020-01-01"}`)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("valid", true)))
		})

		It("returns invalid_body for unparseable json", func() {
			rr := post("/fields/check", `{"name": `)
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("error_code", "invalid_body")))
		})

		It("returns invalid_body for unknown keys", func() {
			rr := post("/fields/check", `{"name": "x", "colour": "red"}`)
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("error_code", "invalid_body")))
		})

		It("requires a single descriptor", func() {
			rr := post("/fields/check", `[{"name": "a"}, {"name": "b"}]`)
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("error_code", "invalid_body"),
				HaveKeyWithValue("message", "expected a single descriptor object"),
			)))
		})

		It("rejects bodies that are too large", func() {
			big := `{"name": "x", "value": "` + strings.Repeat("a", 2<<20) + `"}`
			rr := post("/fields/check", big)
			Expect(rr).To(HaveResponseCode(413))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("error_code", "body_too_large")))
		})
	})

	Describe("POST /fields/check_batch", func() {
		It("checks every descriptor in order", func() {
			rr := post("/fields/check_batch", `[
				{"name": "a", "required": true, "value": "x"},
				{"name": "b", "required": true},
				{"name": "c", "type": "text", "pattern": "^[0-9]+$", "value": "12"}
			]`)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("valid", false),
				HaveKeyWithValue("results", HaveLen(3)),
			)))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("results", HaveExactElements(
				HaveKeyWithValue("name", "a"),
				And(HaveKeyWithValue("name", "b"), HaveKeyWithValue("valid", false)),
				And(HaveKeyWithValue("name", "c"), HaveKeyWithValue("kind", "pattern")),
			))))
		})

		It("accepts a single object", func() {
			rr := post("/fields/check_batch", `{"name": "a", "value": "x"}`)
			Expect(rr).To(HaveResponseCode(200))
			Expect(rr).To(HaveJsonBody(And(
				HaveKeyWithValue("valid", true),
				HaveKeyWithValue("results", HaveLen(1)),
			)))
		})

		It("fails the batch when any descriptor is invalid", func() {
			rr := post("/fields/check_batch", `[{"name": "a"}, {"name": "b", "pattern": "("}]`)
			Expect(rr).To(HaveResponseCode(400))
			Expect(rr).To(HaveJsonBody(HaveKeyWithValue("error_code", "invalid_descriptor")))
		})
	})
})
