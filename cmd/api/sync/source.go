package sync

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/models"
	"github.com/KuzenkovAG/restaurant-menu/common/logger"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Spreadsheet rows are hierarchically grouped: a row belongs to whichever
// kind's identifier column is populated first, checked in menu → submenu
// → dish priority order. Parent id cells appear only on the first row of
// a group, so the current menu/submenu context carries forward.
const (
	menuIDCol    = 0
	menuTitleCol = 1
	menuDescCol  = 2

	submenuIDCol    = 1
	submenuTitleCol = 2
	submenuDescCol  = 3

	dishIDCol       = 2
	dishTitleCol    = 3
	dishDescCol     = 4
	dishPriceCol    = 5
	dishDiscountCol = 6
)

// percent-to-fraction divisor for the discount column
var percentDivisor = decimal.NewFromInt(100)

// Source produces the source-of-truth snapshot for one sync pass
type Source interface {
	Parse(ctx context.Context) (*Snapshot, error)
}

// ExcelSource reads the externally maintained menu spreadsheet from a
// local .xlsx file or a remote export URL.
type ExcelSource struct {
	location string
	client   *http.Client
	log      *logger.Logger
}

// NewExcelSource creates a new spreadsheet source
func NewExcelSource(location string, log *logger.Logger) *ExcelSource {
	return &ExcelSource{
		location: location,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

// Parse reads the spreadsheet and normalizes it into a snapshot.
// Extraction is best-effort: rows matching no kind are skipped and
// malformed numeric cells default to zero. Only a whole-file failure
// aborts the pass.
func (s *ExcelSource) Parse(ctx context.Context) (*Snapshot, error) {
	rows, err := s.readRows(ctx)
	if err != nil {
		return nil, err
	}

	snap := NewSnapshot()
	var menuID, submenuID string

	for _, row := range rows {
		switch {
		case cell(row, menuIDCol) != "":
			menuID = canonicalID(cell(row, menuIDCol))
			submenuID = ""
			snap.Menus[menuID] = MenuRecord{
				ID:          menuID,
				Title:       cell(row, menuTitleCol),
				Description: cell(row, menuDescCol),
			}

		case cell(row, submenuIDCol) != "":
			if menuID == "" {
				continue // submenu row before any menu group
			}
			submenuID = canonicalID(cell(row, submenuIDCol))
			snap.SubMenus[submenuID] = SubMenuRecord{
				ID:          submenuID,
				Title:       cell(row, submenuTitleCol),
				Description: cell(row, submenuDescCol),
				MenuID:      menuID,
			}

		case cell(row, dishIDCol) != "":
			if menuID == "" || submenuID == "" {
				continue // dish row without menu and submenu context
			}
			dishID := canonicalID(cell(row, dishIDCol))
			snap.Dishes[dishID] = DishRecord{
				ID:          dishID,
				Title:       cell(row, dishTitleCol),
				Description: cell(row, dishDescCol),
				Price:       s.parsePrice(cell(row, dishPriceCol)),
				Discount:    s.parseDiscount(cell(row, dishDiscountCol)),
				MenuID:      menuID,
				SubMenuID:   submenuID,
			}
		}
	}

	s.log.Debug("parsed tabular source",
		"menus", len(snap.Menus),
		"submenus", len(snap.SubMenus),
		"dishes", len(snap.Dishes),
	)

	return snap, nil
}

// readRows opens the spreadsheet and returns the first sheet's rows
func (s *ExcelSource) readRows(ctx context.Context) ([][]string, error) {
	var (
		file *excelize.File
		err  error
	)

	if isRemote(s.location) {
		file, err = s.download(ctx)
	} else {
		file, err = excelize.OpenFile(s.location)
	}
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet %s: %w", s.location, err)
	}
	defer file.Close()

	sheet := file.GetSheetName(0)
	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	return rows, nil
}

func (s *ExcelSource) download(ctx context.Context) (*excelize.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return excelize.OpenReader(bytes.NewReader(body))
}

// parsePrice normalizes a price cell. Malformed or missing values
// default to zero; a bad cell never aborts the parse.
func (s *ExcelSource) parsePrice(raw string) string {
	if raw == "" {
		return moneyString(decimal.Zero)
	}

	price, err := decimal.NewFromString(raw)
	if err != nil {
		s.log.Warn("malformed price cell, defaulting to zero", "value", raw)
		return moneyString(decimal.Zero)
	}

	return moneyString(price)
}

// parseDiscount normalizes a discount cell. The sheet holds percents;
// the stored value is a fraction clamped to [0, 1]. Malformed or missing
// values default to zero.
func (s *ExcelSource) parseDiscount(raw string) string {
	if raw == "" {
		return moneyString(decimal.Zero)
	}

	percent, err := decimal.NewFromString(raw)
	if err != nil {
		s.log.Warn("malformed discount cell, defaulting to zero", "value", raw)
		return moneyString(decimal.Zero)
	}

	return moneyString(models.ClampDiscount(percent.Div(percentDivisor)))
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
