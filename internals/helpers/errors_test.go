package helper

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", Errorf(ErrNotFound, "student not found"), fiber.StatusNotFound},
		{"validation", Errorf(ErrValidation, "bad"), fiber.StatusBadRequest},
		{"out of range", fmt.Errorf("apply: %w", ErrOutOfRange), fiber.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, fiber.StatusUnauthorized},
		{"forbidden", ErrForbidden, fiber.StatusForbidden},
		{"conflict", Errorf(ErrConflict, "dup"), fiber.StatusConflict},
		{"unavailable", ErrUnavailable, fiber.StatusServiceUnavailable},
		{"other", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusOf(tc.err))
		})
	}
}

func TestErrorfKeepsMessageAndKind(t *testing.T) {
	err := Errorf(ErrNotFound, "student %d not found", 7)
	assert.Equal(t, "student 7 not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFromServiceErrorHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return FromServiceError(c, errors.New("pq: password authentication failed"))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return FromServiceError(c, Errorf(ErrNotFound, "student not found"))
	})

	t.Run("internal", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(body), "password")
		assert.Contains(t, string(body), "INTERNAL_ERROR")
	})

	t.Run("not found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "student not found")
	})
}

func TestBuildPaginationFromOffset(t *testing.T) {
	p := BuildPaginationFromOffset(25, 10, 10, 10)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPaginationFromOffset(0, 0, 10, 0)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestResolvePaging(t *testing.T) {
	app := fiber.New()
	var got Paging
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, DefaultLimit, MaxLimit)
		return nil
	})

	cases := []struct {
		query string
		want  Paging
	}{
		{"", Paging{Skip: 0, Limit: 10}},
		{"?skip=5&limit=20", Paging{Skip: 5, Limit: 20}},
		{"?skip=-3&limit=0", Paging{Skip: 0, Limit: 10}},
		{"?limit=1000", Paging{Skip: 0, Limit: 100}},
		{"?limit=abc", Paging{Skip: 0, Limit: 10}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			_, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
