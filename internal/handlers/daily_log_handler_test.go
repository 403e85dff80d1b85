package handlers

import (
	"net/http"
	"testing"

	"github.com/Midoriya12/calsnap/internal/service"
	"github.com/Midoriya12/calsnap/internal/testutil"
	"github.com/gin-gonic/gin"
)

func newDailyLogRouter(repo *testutil.MockDailyLogRepo) *gin.Engine {
	handler := NewDailyLogHandler(service.NewDailyLogService(repo))

	r := gin.New()
	g := r.Group("/daily-log", setUser(testutil.TestUserID))
	g.POST("", handler.LogMeal)
	g.GET("", handler.GetDailyLog)
	g.DELETE("/:meal_id", handler.DeleteLoggedMeal)
	return r
}

func TestDailyLog_Flow(t *testing.T) {
	r := newDailyLogRouter(&testutil.MockDailyLogRepo{})

	w := doJSON(r, "POST", "/daily-log", `{"mealName": "Oatmeal", "calories": 300, "fiber": 8, "dateLogged": "2026-03-14", "source": "Manual Entry"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	id := decodeBody(t, w)["meal"].(map[string]interface{})["id"].(string)

	w = doJSON(r, "GET", "/daily-log?date=2026-03-14", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	totals := body["totals"].(map[string]interface{})
	if totals["calories"] != float64(300) || totals["fiber"] != float64(8) {
		t.Errorf("totals = %v", totals)
	}

	if w = doJSON(r, "DELETE", "/daily-log/"+id, ""); w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}
}

func TestDailyLog_ValidationErrors(t *testing.T) {
	r := newDailyLogRouter(&testutil.MockDailyLogRepo{})

	bodies := []string{
		`{"mealName": "", "calories": 100}`,
		`{"mealName": "Soup", "calories": -5}`,
		`{"mealName": "Soup", "calories": 100, "dateLogged": "tomorrow"}`,
	}
	for _, b := range bodies {
		if w := doJSON(r, "POST", "/daily-log", b); w.Code != http.StatusBadRequest {
			t.Errorf("POST %s status = %d, want 400", b, w.Code)
		}
	}

	if w := doJSON(r, "GET", "/daily-log?date=03-14-2026", ""); w.Code != http.StatusBadRequest {
		t.Errorf("GET bad date status = %d, want 400", w.Code)
	}
}
