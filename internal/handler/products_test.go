package handler_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vendops/api/internal/database"
	"github.com/vendops/api/internal/handler"
	"github.com/xuri/excelize/v2"
)

// --- Mock store ---

type mockProductStore struct {
	products   map[uuid.UUID]database.Product
	lastList   database.ListProductsParams
	referenced map[uuid.UUID]bool // products with order items
	categories []database.Category
}

func newMockProductStore() *mockProductStore {
	return &mockProductStore{
		products:   make(map[uuid.UUID]database.Product),
		referenced: make(map[uuid.UUID]bool),
	}
}

func testNumeric(s string) pgtype.Numeric {
	var n pgtype.Numeric
	_ = n.Scan(s)
	return n
}

func (m *mockProductStore) addProduct(name string, stock int32, status database.ProductStatus) database.Product {
	p := database.Product{
		ID:        uuid.New(),
		Name:      name,
		Price:     testNumeric("1.50"),
		Stock:     stock,
		Status:    status,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.products[p.ID] = p
	return p
}

func (m *mockProductStore) ListProducts(_ context.Context, arg database.ListProductsParams) ([]database.Product, error) {
	m.lastList = arg
	var out []database.Product
	for _, p := range m.products {
		if arg.Status.Valid && p.Status != arg.Status.ProductStatus {
			continue
		}
		if arg.Search.Valid && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(arg.Search.String)) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductStore) GetProduct(_ context.Context, id uuid.UUID) (database.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return database.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *mockProductStore) GetProductByName(_ context.Context, name string) (database.Product, error) {
	for _, p := range m.products {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return database.Product{}, pgx.ErrNoRows
}

func (m *mockProductStore) CreateProduct(_ context.Context, arg database.CreateProductParams) (database.Product, error) {
	p := database.Product{
		ID:             uuid.New(),
		Name:           arg.Name,
		Category:       arg.Category,
		CategoryID:     arg.CategoryID,
		SubcategoryID:  arg.SubcategoryID,
		Price:          arg.Price,
		Description:    arg.Description,
		Image:          arg.Image,
		Stock:          arg.Stock,
		Specifications: arg.Specifications,
		Status:         arg.Status,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductStore) UpdateProduct(_ context.Context, arg database.UpdateProductParams) (database.Product, error) {
	p, ok := m.products[arg.ID]
	if !ok {
		return database.Product{}, pgx.ErrNoRows
	}
	p.Name = arg.Name
	p.Category = arg.Category
	p.CategoryID = arg.CategoryID
	p.SubcategoryID = arg.SubcategoryID
	p.Price = arg.Price
	p.Description = arg.Description
	p.Image = arg.Image
	p.Stock = arg.Stock
	p.Specifications = arg.Specifications
	p.Status = arg.Status
	m.products[p.ID] = p
	return p, nil
}

func (m *mockProductStore) ListCategories(_ context.Context) ([]database.Category, error) {
	return m.categories, nil
}

func (m *mockProductStore) DeleteProduct(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	if _, ok := m.products[id]; !ok {
		return uuid.Nil, pgx.ErrNoRows
	}
	if m.referenced[id] {
		return uuid.Nil, &pgconn.PgError{Code: "23503"}
	}
	delete(m.products, id)
	return id, nil
}

// --- Helpers ---

func setupProductRouter(store *mockProductStore, stats *countingInvalidator, sessions *fakeSessions) *chi.Mux {
	h := handler.NewProductHandler(store, stats)
	return setupAPIRouter(sessions, func(r chi.Router) {
		r.Route("/products", h.RegisterRoutes)
	})
}

func adminSession(t *testing.T) (*fakeSessions, string) {
	t.Helper()
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleAdmin)
	return sessions, token
}

// --- List / Get tests ---

func TestListProducts_Filters(t *testing.T) {
	store := newMockProductStore()
	store.addProduct("Cola", 10, database.ProductStatusActive)
	store.addProduct("Chips", 0, database.ProductStatusOutOfStock)
	router := setupProductRouter(store, &countingInvalidator{}, newFakeSessions())

	rr := doRequest(t, router, "GET", "/api/products?status=active&search=co&limit=500&offset=5", nil)
	assertStatus(t, rr, http.StatusOK)

	resp := decodeList(t, rr)
	if len(resp) != 1 || resp[0]["name"] != "Cola" {
		t.Fatalf("unexpected products: %v", resp)
	}
	if resp[0]["price"] != "1.50" {
		t.Errorf("price: got %v, want 1.50", resp[0]["price"])
	}
	if store.lastList.Limit != 100 || store.lastList.Offset != 5 {
		t.Errorf("pagination: got limit=%d offset=%d, want 100/5", store.lastList.Limit, store.lastList.Offset)
	}
}

func TestListProducts_DefaultPagination(t *testing.T) {
	store := newMockProductStore()
	router := setupProductRouter(store, &countingInvalidator{}, newFakeSessions())

	rr := doRequest(t, router, "GET", "/api/products", nil)
	assertStatus(t, rr, http.StatusOK)
	if store.lastList.Limit != 20 || store.lastList.Offset != 0 {
		t.Errorf("pagination: got limit=%d offset=%d, want 20/0", store.lastList.Limit, store.lastList.Offset)
	}
	if store.lastList.Status.Valid || store.lastList.CategoryID.Valid || store.lastList.Search.Valid {
		t.Error("no filters should be set")
	}
}

func TestListProducts_InvalidStatus(t *testing.T) {
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, newFakeSessions())

	rr := doRequest(t, router, "GET", "/api/products?status=discontinued", nil)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "invalid status")
}

func TestGetProduct_NotFound(t *testing.T) {
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, newFakeSessions())

	rr := doRequest(t, router, "GET", "/api/products/"+uuid.New().String(), nil)
	assertStatus(t, rr, http.StatusNotFound)
	assertError(t, rr, "product not found")
}

// --- Create / Update tests ---

func TestCreateProduct_ZeroStockIsOutOfStock(t *testing.T) {
	sessions, token := adminSession(t)
	stats := &countingInvalidator{}
	router := setupProductRouter(newMockProductStore(), stats, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/products", map[string]interface{}{
		"name":   "Snack machine X200",
		"price":  "2499.00",
		"stock":  0,
		"status": "active",
		"specifications": map[string]string{
			"capacity": "45 selections",
		},
	}, token)
	assertStatus(t, rr, http.StatusCreated)

	resp := decodeMap(t, rr)
	if resp["status"] != "out_of_stock" {
		t.Errorf("status: got %v, want out_of_stock", resp["status"])
	}
	if resp["price"] != "2499.00" {
		t.Errorf("price: got %v, want 2499.00", resp["price"])
	}
	if stats.calls != 1 {
		t.Errorf("stats invalidations: got %d, want 1", stats.calls)
	}
}

func TestCreateProduct_DefaultsToActive(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/products", map[string]interface{}{
		"name":  "Coil",
		"price": 3.25,
		"stock": 4,
	}, token)
	assertStatus(t, rr, http.StatusCreated)
	if resp := decodeMap(t, rr); resp["status"] != "active" {
		t.Errorf("status: got %v, want active", resp["status"])
	}
}

func TestCreateProduct_Validation(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/products", map[string]interface{}{
		"stock":  -1,
		"status": "gone",
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)

	resp := decodeMap(t, rr)
	errs := resp["errors"].([]interface{})
	if len(errs) != 4 {
		t.Errorf("field errors: got %d, want 4 (name, price, stock, status): %v", len(errs), errs)
	}
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/products", map[string]interface{}{
		"name":  "Coil",
		"price": "-1",
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)
}

func TestCreateProduct_PriceOutOfRange(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	router := setupProductRouter(store, &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/products", map[string]interface{}{
		"name":  "Gold Coil",
		"price": "100000000",
	}, token)
	assertStatus(t, rr, http.StatusBadRequest)

	errs := decodeMap(t, rr)["errors"].([]interface{})
	if len(errs) != 1 || errs[0].(map[string]interface{})["field"] != "price" {
		t.Errorf("field errors: got %v, want price", errs)
	}
	if len(store.products) != 0 {
		t.Error("product must not be stored")
	}
}

func TestCreateProduct_BlankSpecificationKeys(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	router := setupProductRouter(store, &countingInvalidator{}, sessions)

	for _, key := range []string{"", "   "} {
		rr := doAuthRequest(t, router, "POST", "/api/products", map[string]interface{}{
			"name":           "Spiral",
			"price":          "2.50",
			"specifications": map[string]string{"pitch": "5", key: "x"},
		}, token)
		assertStatus(t, rr, http.StatusBadRequest)
		assertError(t, rr, "validation failed")
	}
	if len(store.products) != 0 {
		t.Error("product must not be stored")
	}
}

func TestCreateProduct_CustomerForbidden(t *testing.T) {
	sessions := newFakeSessions()
	token, _ := sessions.signIn(t, database.UserRoleCustomer)
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/products", map[string]interface{}{"name": "X", "price": 1}, token)
	assertStatus(t, rr, http.StatusForbidden)
}

func TestUpdateProduct_RestockReactivates(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	p := store.addProduct("Chips", 0, database.ProductStatusOutOfStock)
	router := setupProductRouter(store, &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "PUT", "/api/products/"+p.ID.String(), map[string]interface{}{
		"name":  "Chips",
		"price": "1.75",
		"stock": 12,
	}, token)
	assertStatus(t, rr, http.StatusOK)

	resp := decodeMap(t, rr)
	if resp["status"] != "active" {
		t.Errorf("status: got %v, want active", resp["status"])
	}
	if resp["stock"] != float64(12) {
		t.Errorf("stock: got %v, want 12", resp["stock"])
	}
}

func TestUpdateProduct_KeepsInactiveStatus(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	p := store.addProduct("Retired machine", 3, database.ProductStatusInactive)
	router := setupProductRouter(store, &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "PUT", "/api/products/"+p.ID.String(), map[string]interface{}{
		"name":  "Retired machine",
		"price": "100",
		"stock": 5,
	}, token)
	assertStatus(t, rr, http.StatusOK)
	if resp := decodeMap(t, rr); resp["status"] != "inactive" {
		t.Errorf("status: got %v, want inactive", resp["status"])
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "PUT", "/api/products/"+uuid.New().String(), map[string]interface{}{
		"name":  "Ghost",
		"price": "1",
	}, token)
	assertStatus(t, rr, http.StatusNotFound)
}

// --- Delete tests ---

func TestDeleteProduct_Referenced(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	p := store.addProduct("Cola", 10, database.ProductStatusActive)
	store.referenced[p.ID] = true
	router := setupProductRouter(store, &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "DELETE", "/api/products/"+p.ID.String(), nil, token)
	assertStatus(t, rr, http.StatusConflict)
}

func TestDeleteProduct_Valid(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	p := store.addProduct("Cola", 10, database.ProductStatusActive)
	stats := &countingInvalidator{}
	router := setupProductRouter(store, stats, sessions)

	rr := doAuthRequest(t, router, "DELETE", "/api/products/"+p.ID.String(), nil, token)
	assertStatus(t, rr, http.StatusOK)
	if len(store.products) != 0 {
		t.Error("product should be deleted")
	}
	if stats.calls != 1 {
		t.Errorf("stats invalidations: got %d, want 1", stats.calls)
	}
}

// --- Import tests ---

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func doUpload(t *testing.T, router http.Handler, path, token string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "products.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestImportProducts_Upserts(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	existing := store.addProduct("Cola", 10, database.ProductStatusActive)
	stats := &countingInvalidator{}
	router := setupProductRouter(store, stats, sessions)

	content := buildWorkbook(t, [][]interface{}{
		{"Name", "Category", "Price", "Stock", "Status"},
		{"cola", "Beverages", "1.80", "0", ""},
		{"Gum", "Snacks", "0.99", "40", "active"},
		{"", "", "", "", ""},
		{"Broken", "Snacks", "abc", "1", ""},
	})

	rr := doUpload(t, router, "/api/products/import", token, content)
	assertStatus(t, rr, http.StatusOK)

	resp := decodeMap(t, rr)
	if resp["created"] != float64(1) || resp["updated"] != float64(1) {
		t.Errorf("created/updated: got %v/%v, want 1/1", resp["created"], resp["updated"])
	}
	errs := resp["errors"].([]interface{})
	if len(errs) != 1 {
		t.Fatalf("errors: got %v, want 1 entry", errs)
	}
	if errs[0].(map[string]interface{})["row"] != float64(5) {
		t.Errorf("error row: got %v, want 5", errs[0].(map[string]interface{})["row"])
	}

	updated := store.products[existing.ID]
	if updated.Stock != 0 || updated.Status != database.ProductStatusOutOfStock {
		t.Errorf("updated product: stock=%d status=%s, want 0/out_of_stock", updated.Stock, updated.Status)
	}
	if updated.Name != "Cola" {
		t.Errorf("name should keep its stored casing, got %q", updated.Name)
	}
	if stats.calls != 1 {
		t.Errorf("stats invalidations: got %d, want 1", stats.calls)
	}
}

func TestImportProducts_MissingFile(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, sessions)

	rr := doAuthRequest(t, router, "POST", "/api/products/import", nil, token)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "file is required")
}

func TestImportProducts_MissingPriceColumn(t *testing.T) {
	sessions, token := adminSession(t)
	router := setupProductRouter(newMockProductStore(), &countingInvalidator{}, sessions)

	content := buildWorkbook(t, [][]interface{}{{"Name", "Stock"}, {"Gum", "3"}})
	rr := doUpload(t, router, "/api/products/import", token, content)
	assertStatus(t, rr, http.StatusBadRequest)
	assertError(t, rr, "missing price column")
}

func TestImportProducts_ResolvesCategories(t *testing.T) {
	sessions, token := adminSession(t)
	store := newMockProductStore()
	snack := database.Category{ID: uuid.New(), Name: "Snack Machines"}
	combo := database.Category{ID: uuid.New(), Name: "Combo Machines"}
	store.categories = []database.Category{snack, combo}
	router := setupProductRouter(store, &countingInvalidator{}, sessions)

	content := buildWorkbook(t, [][]interface{}{
		{"Name", "Category", "Price", "Stock"},
		{"X200", "snack machines", "2499", "3"},
		{"C500", "combo", "4299", "1"},
		{"Mystery", "machines", "10", "1"},
		{"Spare belt", "Parts", "5", "20"},
	})

	rr := doUpload(t, router, "/api/products/import", token, content)
	assertStatus(t, rr, http.StatusOK)

	resp := decodeMap(t, rr)
	if resp["created"] != float64(3) {
		t.Errorf("created: got %v, want 3", resp["created"])
	}
	errs := resp["errors"].([]interface{})
	if len(errs) != 1 || errs[0].(map[string]interface{})["row"] != float64(4) {
		t.Fatalf("errors: got %v, want ambiguous row 4", errs)
	}

	byName := make(map[string]database.Product)
	for _, p := range store.products {
		byName[p.Name] = p
	}
	if got := byName["X200"]; uuid.UUID(got.CategoryID.Bytes) != snack.ID || got.Category.String != "Snack Machines" {
		t.Errorf("X200 category: got %v / %q", got.CategoryID, got.Category.String)
	}
	if got := byName["C500"]; uuid.UUID(got.CategoryID.Bytes) != combo.ID {
		t.Errorf("C500 category id: got %v, want %s", got.CategoryID, combo.ID)
	}
	if got := byName["Spare belt"]; got.CategoryID.Valid || got.Category.String != "Parts" {
		t.Errorf("unknown category should stay free text, got %v / %q", got.CategoryID, got.Category.String)
	}
}
