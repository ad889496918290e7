package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"hourcount/internal/config"
	"hourcount/internal/db"
	"hourcount/internal/model"
	"hourcount/internal/repository"
)

const defaultRosterURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTKXrQVygPNr1UmI0MyY8FpjOpE1s-fFwV2F3fjViQz7ZyZPEJMQ7577p7h-MlW0JmKKlXgzu2KBn6H/pub?output=csv"

// rosterRow is one line of the published roster sheet.
type rosterRow struct {
	Department string
	POR        string
	Name       string
	ID         string
}

// idPattern extracts the admission year and the four-digit roll number
// from institutional ids like 2024A8PS1330P.
var idPattern = regexp.MustCompile(`^(\d{4}).*?(\d{4})`)

// emailFromID derives the institutional email from a roster id.
// 2024A8PS1330P becomes f20241330@pilani.bits-pilani.ac.in.
func emailFromID(id string) (string, bool) {
	match := idPattern.FindStringSubmatch(strings.TrimSpace(id))
	if match == nil {
		return "", false
	}
	return fmt.Sprintf("f%s%s@pilani.bits-pilani.ac.in", match[1], match[2]), true
}

// roleFromPOR maps the roster's POR column to a role and an optional
// specific-position label.
func roleFromPOR(por string) (model.Role, string) {
	por = strings.TrimSpace(por)
	for _, position := range model.SecondYearPositions {
		if strings.EqualFold(por, position) {
			return model.RoleSecondYearPOR, position
		}
	}
	switch strings.ToLower(por) {
	case "coordinator":
		return model.RoleCoordinator, ""
	case "trio":
		return model.RoleTrio, ""
	}
	return model.RoleMember, ""
}

func main() {
	log.Println("Starting roster seed...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	rosterURL := defaultRosterURL
	if v := os.Getenv("SEED_CSV_URL"); v != "" {
		rosterURL = v
	}

	log.Printf("Fetching roster from: %s", rosterURL)
	rows, err := fetchRoster(rosterURL)
	if err != nil {
		log.Fatalf("Failed to fetch roster: %v", err)
	}
	log.Printf("Fetched %d roster rows", len(rows))

	userRepo := repository.NewUserRepository(gormDB)
	deptRepo := repository.NewDepartmentRepository(gormDB)
	ctx := context.Background()

	created, updated, skipped := 0, 0, 0
	for _, row := range rows {
		email, ok := emailFromID(row.ID)
		if !ok {
			log.Printf("Skipping row with unparseable id: %q", row.ID)
			skipped++
			continue
		}
		if row.Name == "" || row.Department == "" {
			skipped++
			continue
		}

		dept, err := deptRepo.FindOrCreateByName(ctx, row.Department)
		if err != nil {
			log.Fatalf("Failed to resolve department %q: %v", row.Department, err)
		}

		role, position := roleFromPOR(row.POR)

		existing, err := userRepo.FindByEmail(ctx, email)
		if err != nil && err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up %s: %v", email, err)
		}

		if existing != nil {
			existing.Name = row.Name
			existing.Role = role
			existing.SpecificPosition = position
			existing.DepartmentID = dept.ID
			if err := userRepo.Update(ctx, existing); err != nil {
				log.Fatalf("Failed to update %s: %v", email, err)
			}
			updated++
			continue
		}

		user := &model.User{
			Name:             row.Name,
			Email:            email,
			Role:             role,
			SpecificPosition: position,
			DepartmentID:     dept.ID,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create %s: %v", email, err)
		}
		created++
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users created: %d", created)
	log.Printf("  - Existing users updated: %d", updated)
	log.Printf("  - Rows skipped: %d", skipped)
}

// fetchRoster downloads and parses the published roster CSV. The
// sheet must carry Dept, POR, Name and ID columns.
func fetchRoster(url string) ([]rosterRow, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("roster returned status code: %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("roster csv is empty")
	}

	header := map[string]int{}
	for i, name := range records[0] {
		header[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Dept", "POR", "Name", "ID"} {
		if _, ok := header[required]; !ok {
			return nil, fmt.Errorf("roster csv is missing column %q", required)
		}
	}

	cell := func(record []string, column string) string {
		idx := header[column]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	rows := make([]rosterRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rosterRow{
			Department: cell(record, "Dept"),
			POR:        cell(record, "POR"),
			Name:       cell(record, "Name"),
			ID:         cell(record, "ID"),
		})
	}
	return rows, nil
}
