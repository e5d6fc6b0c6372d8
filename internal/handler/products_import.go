package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/vendops/api/internal/catalog"
	"github.com/vendops/api/internal/database"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const maxImportSize = 10 << 20

// importColumns are the recognised header cells, matched case-insensitively.
var importColumns = []string{"name", "category", "price", "stock", "description", "image", "status"}

type importRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type importResponse struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  []importRowError `json:"errors"`
}

type importRow struct {
	name        string
	category    string
	categoryID  pgtype.UUID
	price       decimal.Decimal
	stock       int32
	description string
	image       string
	status      database.ProductStatus
}

// Import upserts products by name from the first sheet of an uploaded XLSX
// file (form field "file"). Bad rows are reported and skipped.
func (h *ProductHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	book, err := excelize.OpenReader(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is not a valid XLSX workbook")
		return
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		writeError(w, http.StatusBadRequest, "workbook has no sheets")
		return
	}
	rows, err := book.GetRows(sheets[0])
	if err != nil {
		writeInternalError(w, "read import sheet", err)
		return
	}
	if len(rows) == 0 {
		writeError(w, http.StatusBadRequest, "sheet is empty")
		return
	}

	cols := headerIndex(rows[0])
	if _, ok := cols["name"]; !ok {
		writeError(w, http.StatusBadRequest, "missing name column")
		return
	}
	if _, ok := cols["price"]; !ok {
		writeError(w, http.StatusBadRequest, "missing price column")
		return
	}

	var categories *catalog.Matcher
	if _, ok := cols["category"]; ok {
		categories, err = h.categoryMatcher(r)
		if err != nil {
			writeInternalError(w, "load import categories", err)
			return
		}
	}

	resp := importResponse{Errors: []importRowError{}}
	for i, cells := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(cells) {
			continue
		}

		row, err := parseImportRow(cells, cols)
		if err == nil && categories != nil {
			err = resolveCategory(&row, categories)
		}
		if err != nil {
			resp.Errors = append(resp.Errors, importRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		created, err := h.upsertProduct(r, row)
		if err != nil {
			resp.Errors = append(resp.Errors, importRowError{Row: rowNum, Message: "could not save product"})
			zap.L().Warn("import product row", zap.Int("row", rowNum), zap.Error(err))
			continue
		}
		if created {
			resp.Created++
		} else {
			resp.Updated++
		}
	}

	if resp.Created+resp.Updated > 0 {
		h.stats.Invalidate(r.Context())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) upsertProduct(r *http.Request, row importRow) (bool, error) {
	existing, err := h.store.GetProductByName(r.Context(), row.name)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, err
	}

	if errors.Is(err, pgx.ErrNoRows) {
		_, err := h.store.CreateProduct(r.Context(), database.CreateProductParams{
			Name:        row.name,
			Category:    toText(row.category),
			CategoryID:  row.categoryID,
			Price:       decimalToNumeric(row.price),
			Description: toText(row.description),
			Image:       toText(row.image),
			Stock:       row.stock,
			Status:      productStatusFor(row.status, row.stock),
		})
		return true, err
	}

	status := row.status
	if status == "" {
		status = existing.Status
	}
	category, categoryID := existing.Category, existing.CategoryID
	description, image := existing.Description, existing.Image
	if row.category != "" {
		category = toText(row.category)
		if row.categoryID.Valid {
			categoryID = row.categoryID
		}
	}
	if row.description != "" {
		description = toText(row.description)
	}
	if row.image != "" {
		image = toText(row.image)
	}

	_, err = h.store.UpdateProduct(r.Context(), database.UpdateProductParams{
		ID:             existing.ID,
		Name:           existing.Name,
		Category:       category,
		CategoryID:     categoryID,
		SubcategoryID:  existing.SubcategoryID,
		Price:          decimalToNumeric(row.price),
		Description:    description,
		Image:          image,
		Stock:          row.stock,
		Specifications: existing.Specifications,
		Status:         productStatusFor(status, row.stock),
	})
	return false, err
}

// categoryMatcher indexes the existing categories by name.
func (h *ProductHandler) categoryMatcher(r *http.Request) (*catalog.Matcher, error) {
	cats, err := h.store.ListCategories(r.Context())
	if err != nil {
		return nil, err
	}
	entries := make([]catalog.Entry, len(cats))
	for i, c := range cats {
		entries[i] = catalog.Entry{ID: c.ID, Name: c.Name}
	}
	return catalog.New(entries), nil
}

// resolveCategory links the row to a known category. Unknown names are kept
// as free text; a name that fits several categories is rejected.
func resolveCategory(row *importRow, m *catalog.Matcher) error {
	if row.category == "" {
		return nil
	}
	res := m.Match(row.category)
	switch res.Status {
	case catalog.Matched:
		row.category = res.Entry.Name
		row.categoryID = pgtype.UUID{Bytes: res.Entry.ID, Valid: true}
	case catalog.Ambiguous:
		names := make([]string, len(res.Candidates))
		for i, c := range res.Candidates {
			names[i] = c.Name
		}
		return fmt.Errorf("category %q is ambiguous: %s", row.category, strings.Join(names, ", "))
	}
	return nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for _, col := range importColumns {
			if name == col {
				idx[col] = i
			}
		}
	}
	return idx
}

func cellAt(cells []string, cols map[string]int, col string) string {
	i, ok := cols[col]
	if !ok || i >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[i])
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseImportRow(cells []string, cols map[string]int) (importRow, error) {
	row := importRow{
		name:        cellAt(cells, cols, "name"),
		category:    cellAt(cells, cols, "category"),
		description: cellAt(cells, cols, "description"),
		image:       cellAt(cells, cols, "image"),
	}
	if row.name == "" {
		return row, errors.New("name is required")
	}

	price, err := decimal.NewFromString(cellAt(cells, cols, "price"))
	if err != nil {
		return row, errors.New("price must be a number")
	}
	if fe, bad := moneyError(moneyField{name: "price", amount: &price}); bad {
		return row, errors.New(fe.Field + " " + fe.Message)
	}
	row.price = price

	if v := cellAt(cells, cols, "stock"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			return row, errors.New("stock must be a non-negative integer")
		}
		row.stock = int32(n)
	}

	if v := cellAt(cells, cols, "status"); v != "" {
		status := database.ProductStatus(strings.ToLower(v))
		if !status.Valid() {
			return row, fmt.Errorf("invalid status %q", v)
		}
		row.status = status
	}
	return row, nil
}
