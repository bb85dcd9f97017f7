package helper

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/naufaladysaputro/be-absensi-qrcode/internals/helpers/apperror"
)

func call(t *testing.T, h fiber.Handler) (int, map[string]any) {
	t.Helper()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/", h)
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	b, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return resp.StatusCode, out
}

func TestJsonAppError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"kind default message", apperror.New(apperror.KindNISTaken), 400, "STUDENT_NIS_TAKEN", "NIS sudah terdaftar"},
		{"custom message", apperror.Newf(apperror.KindInvalidTime, "Format jam masuk tidak valid"), 400, "ATTENDANCE_INVALID_TIME", "Format jam masuk tidak valid"},
		{"not found", apperror.New(apperror.KindStudentNotFound), 404, "STUDENT_NOT_FOUND", "Siswa tidak ditemukan"},
		{"foreign error hides text", errors.New("pq: connection refused"), 500, "INTERNAL_ERROR", "Terjadi kesalahan pada server"},
		{"fiber error", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Ukuran body terlalu besar"), 413, "PAYLOAD_TOO_LARGE", "Ukuran body terlalu besar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, func(c *fiber.Ctx) error { return JsonAppError(c, tt.err) })
			if status != tt.status || body["error_code"] != tt.code || body["message"] != tt.message || body["success"] != false {
				t.Fatalf("got %d %v", status, body)
			}
		})
	}
}

func TestErrorHandlerEnvelope(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error { return errors.New("boom") })
	if status != 500 || body["error_code"] != "INTERNAL_ERROR" {
		t.Fatalf("got %d %v", status, body)
	}
	status, body = call(t, func(c *fiber.Ctx) error { return apperror.New(apperror.KindScanClosed) })
	if status != 400 || body["message"] != "Jam scan sudah lewat" {
		t.Fatalf("got %d %v", status, body)
	}
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	var ok bool
	app.Get("/", func(c *fiber.Ctx) error {
		got, ok = ResolvePaging(c, 20, 100)
		return nil
	})

	app.Test(httptest.NewRequest("GET", "/", nil))
	if ok {
		t.Fatal("no query params means no paging")
	}

	app.Test(httptest.NewRequest("GET", "/?page=3&per_page=500", nil))
	if !ok || got.Page != 3 || got.PerPage != 100 || got.Offset != 200 {
		t.Fatalf("got %+v ok=%v", got, ok)
	}

	p := BuildPaginationFromPage(45, 3, 20, 5)
	if p.TotalPages != 3 || p.HasNext || !p.HasPrev || p.Count != 5 {
		t.Fatalf("pagination %+v", p)
	}
}
