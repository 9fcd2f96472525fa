package transfer

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

const sheetName = "Contacts"

var header = []string{"Name", "Phone"}

// ExportXLSX writes contacts to a workbook with a single "Contacts" sheet.
func ExportXLSX(path string, list []contacts.Contact) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, c := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &[]string{c.Name, c.Phone}); err != nil {
			return err
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}

// ReadXLSX reads contacts from the first sheet of a workbook. A leading
// Name/Phone header row is skipped, as are rows with fewer than two cells.
func ReadXLSX(path string) ([]contacts.Contact, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []contacts.Contact{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	list := make([]contacts.Contact, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		name, phone := strings.TrimSpace(row[0]), strings.TrimSpace(row[1])
		if i == 0 && strings.EqualFold(name, header[0]) && strings.EqualFold(phone, header[1]) {
			continue
		}
		if name == "" && phone == "" {
			continue
		}
		c := contacts.Contact{Name: name, Phone: phone}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("read %s: row %d: %w", path, i+1, err)
		}
		list = append(list, c)
	}
	return list, nil
}
