package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		db, err := initGormDB(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"access_logs", "screen_grants", "company_grants", "callups", "absences", "employees"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedCompanies(db)
		seedScreens(db)

		adminID := seedUser(db, "admin@mail.com", "Admin", string(hash), "admin", nil)
		defaultCompany := int64(1001)
		userID := seedUser(db, "maria@mail.com", "Maria", string(hash), "normal", &defaultCompany)

		seedCompanyGrant(db, userID, 1001, adminID)
		for _, screenCode := range []string{"employees", "absences"} {
			seedScreenGrant(db, userID, screenCode, adminID)
		}

		seedTypes(db)

		fmt.Println("Seed completed")
	},
}

func seedCompanies(db *gorm.DB) {
	companies := []struct {
		Code      int64
		CNPJ      string
		ShortName string
		LegalName string
	}{
		{1001, "12.345.678/0001-90", "Acme BR", "Acme Brasil Ltda"},
		{1002, "98.765.432/0001-10", "Beta Log", "Beta Logística SA"},
	}

	for _, c := range companies {
		var exists int
		if err := db.Raw("SELECT 1 FROM companies WHERE code = ?", c.Code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO companies (code, cnpj, short_name, legal_name, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, true, now(), now())",
			c.Code, c.CNPJ, c.ShortName, c.LegalName,
		).Error; err != nil {
			log.Fatalf("failed to insert company %d: %v", c.Code, err)
		}
		fmt.Println("Seeded company:", c.ShortName)
	}
}

func seedScreens(db *gorm.DB) {
	screens := []struct {
		Code  string
		Name  string
		Order int
	}{
		{"employees", "Funcionários", 1},
		{"absences", "Absenteísmo", 2},
		{"callups", "Convocações", 3},
	}

	for _, s := range screens {
		var exists int
		if err := db.Raw("SELECT 1 FROM screens WHERE code = ?", s.Code).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO screens (code, name, display_order, available_permissions, is_active, created_at, updated_at) VALUES (?, ?, ?, '{\"view\": true, \"edit\": true}', true, now(), now())",
			s.Code, s.Name, s.Order,
		).Error; err != nil {
			log.Fatalf("failed to insert screen %s: %v", s.Code, err)
		}
		fmt.Println("Seeded screen:", s.Code)
	}
}

func seedUser(db *gorm.DB, email, name, hash, userType string, defaultCompany *int64) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Println("user already exists:", email)
		return id
	}

	if err := db.Exec(
		"INSERT INTO users (email, name, password_hash, user_type, is_active, default_company_code, created_at, updated_at) VALUES (?, ?, ?, ?, true, ?, now(), now())",
		email, name, hash, userType, defaultCompany,
	).Error; err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}

	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup user id for %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email)
	return id
}

func seedCompanyGrant(db *gorm.DB, userID, companyCode, grantedBy int64) {
	var exists int
	if err := db.Raw("SELECT 1 FROM company_grants WHERE user_id = ? AND company_code = ?", userID, companyCode).Row().Scan(&exists); err == nil {
		return
	}
	if err := db.Exec(
		"INSERT INTO company_grants (user_id, company_code, granted_by, granted_at) VALUES (?, ?, ?, now())",
		userID, companyCode, grantedBy,
	).Error; err != nil {
		log.Fatalf("failed to grant company %d to user %d: %v", companyCode, userID, err)
	}
	fmt.Printf("Granted company %d to user %d\n", companyCode, userID)
}

func seedScreenGrant(db *gorm.DB, userID int64, screenCode string, grantedBy int64) {
	var screenID int64
	if err := db.Raw("SELECT id FROM screens WHERE code = ?", screenCode).Row().Scan(&screenID); err != nil {
		log.Fatalf("screen not found %s: %v", screenCode, err)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM screen_grants WHERE user_id = ? AND screen_id = ?", userID, screenID).Row().Scan(&exists); err == nil {
		return
	}
	if err := db.Exec(
		"INSERT INTO screen_grants (user_id, screen_id, permissions, granted_by, granted_at) VALUES (?, ?, '{\"view\": true}', ?, now())",
		userID, screenID, grantedBy,
	).Error; err != nil {
		log.Fatalf("failed to grant screen %s to user %d: %v", screenCode, userID, err)
	}
	fmt.Printf("Granted screen %s to user %d\n", screenCode, userID)
}

func seedTypes(db *gorm.DB) {
	absenceTypes := []struct {
		Name                string
		RequiresCertificate bool
	}{
		{"Atestado médico", true},
		{"Falta injustificada", false},
		{"Licença maternidade", true},
	}
	for _, t := range absenceTypes {
		var exists int
		if err := db.Raw("SELECT 1 FROM absence_types WHERE name = ?", t.Name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec(
			"INSERT INTO absence_types (name, requires_certificate, created_at) VALUES (?, ?, now())",
			t.Name, t.RequiresCertificate,
		).Error; err != nil {
			log.Fatalf("failed to insert absence type %s: %v", t.Name, err)
		}
	}

	callupTypes := []string{"Plantão", "Hora extra", "Treinamento"}
	for _, name := range callupTypes {
		var exists int
		if err := db.Raw("SELECT 1 FROM callup_types WHERE name = ?", name).Row().Scan(&exists); err == nil {
			continue
		}
		if err := db.Exec("INSERT INTO callup_types (name, created_at) VALUES (?, now())", name).Error; err != nil {
			log.Fatalf("failed to insert callup type %s: %v", name, err)
		}
	}

	fmt.Println("Seeded type catalogs")
}
