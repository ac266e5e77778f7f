package users_service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/podium-optique/catalog/domain/app"
	"github.com/podium-optique/catalog/internal/ingest/textutil"
)

// UsersService replaces the optician accounts table from the accounts
// workbook. Unlike catalog sheets the layout is fixed: column A username,
// B shop name, C password, D email, E role. Duplicate usernames are
// dropped, missing cells get defaults, and passwords are stored hashed.
type UsersService struct {
	db  *sql.DB
	log *slog.Logger
}

var _ app.UserImportService = &UsersService{}

func New(db *sql.DB, log *slog.Logger) *UsersService {
	return &UsersService{db, log}
}

func (this *UsersService) ImportFile(ctx context.Context, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open accounts workbook: %w", err)
	}
	defer f.Close()

	accounts, duplicates, err := readAccounts(f)
	if err != nil {
		return 0, err
	}
	this.log.Info("accounts read", "unique", len(accounts), "duplicates", duplicates)
	if len(accounts) == 0 {
		return 0, nil
	}

	tx, err := this.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin accounts import: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE users"); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("truncate users: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO users
		(username, shop_name, password, email, role, is_first_login)
		VALUES ($1, $2, $3, $4, $5, TRUE)`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	for _, a := range accounts {
		if _, err := stmt.ExecContext(ctx, a.Username, a.ShopName, a.PasswordHash, a.Email, a.Role); err != nil {
			stmt.Close()
			tx.Rollback()
			return 0, fmt.Errorf("insert account %s: %w", a.Username, err)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit accounts import: %w", err)
	}

	this.log.Info("accounts table replaced", "count", len(accounts))
	return len(accounts), nil
}

func readAccounts(f *excelize.File) ([]app.UserAccount, int, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, fmt.Errorf("accounts workbook has no sheets")
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("read accounts sheet: %w", err)
	}
	defer rows.Close()

	cell := func(row []string, i int) string {
		if i >= len(row) {
			return ""
		}
		return textutil.Clean(row[i])
	}

	var accounts []app.UserAccount
	seen := make(map[string]struct{})
	duplicates := 0
	rowNo := 0
	for rows.Next() {
		rowNo++
		if rowNo == 1 {
			// fixed header row
			continue
		}
		row, err := rows.Columns()
		if err != nil {
			continue
		}

		username := cell(row, 0)
		if username == "" {
			continue
		}
		if _, ok := seen[username]; ok {
			duplicates++
			continue
		}
		seen[username] = struct{}{}

		shop := cell(row, 1)
		if shop == "" {
			shop = "Opticien"
		}
		password := cell(row, 2)
		if password == "" {
			password = "1234"
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, 0, fmt.Errorf("hash password for %s: %w", username, err)
		}

		role := "user"
		if strings.Contains(textutil.Canon(cell(row, 4)), "ADMIN") {
			role = "admin"
		}

		accounts = append(accounts, app.UserAccount{
			Username:     username,
			ShopName:     shop,
			PasswordHash: string(hash),
			Email:        cell(row, 3),
			Role:         role,
		})
	}
	return accounts, duplicates, nil
}
