package department

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workforce/backend/foundation/web"
	"workforce/backend/internal/entity"
	"workforce/backend/internal/repository/postgres/department"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type fakeDepartment struct {
	nameMap map[string]int
	err     error
}

func (f fakeDepartment) GetList(context.Context, department.Filter) ([]department.GetListResponse, int, error) {
	return nil, 0, nil
}

func (f fakeDepartment) GetDetailById(context.Context, int) (entity.Department, error) {
	return entity.Department{}, nil
}

func (f fakeDepartment) Create(context.Context, department.CreateRequest) (department.CreateResponse, error) {
	return department.CreateResponse{}, nil
}

func (f fakeDepartment) UpdateColumns(context.Context, department.UpdateRequest) error {
	return nil
}

func (f fakeDepartment) Delete(context.Context, int) error {
	return nil
}

func (f fakeDepartment) NameMap(context.Context) (map[string]int, error) {
	return f.nameMap, f.err
}

func newTestContext(w *httptest.ResponseRecorder) *web.Context {
	gin.SetMode(gin.TestMode)
	ginCtx, _ := gin.CreateTestContext(w)
	return &web.Context{Context: ginCtx, Ctx: context.Background()}
}

func TestDirectory(t *testing.T) {
	uc := NewController(fakeDepartment{nameMap: map[string]int{"Engineering": 1, "Sales": 2}})

	w := httptest.NewRecorder()
	if err := uc.Directory(newTestContext(w)); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	var body struct {
		Data   map[string]int `json:"data"`
		Status bool           `json:"status"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	if !body.Status {
		t.Error("status = false, want true")
	}
	if body.Data["Engineering"] != 1 || body.Data["Sales"] != 2 {
		t.Errorf("directory = %v, want Engineering=1 Sales=2", body.Data)
	}
}

func TestDirectoryError(t *testing.T) {
	uc := NewController(fakeDepartment{
		err: web.NewRequestError(errors.New("selecting department names"), http.StatusInternalServerError),
	})

	w := httptest.NewRecorder()
	if err := uc.Directory(newTestContext(w)); err != nil {
		t.Fatalf("Directory: %v", err)
	}

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status code = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
