package postgres_test

import (
	"log/slog"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/company"
	companyPostgres "github.com/fbarbosa/hr-management/internal/company/postgres"
	companymodel "github.com/fbarbosa/hr-management/internal/core/datamodel/company"
)

func TestCompanyPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Company Postgres Suite")
}

// SQLite-compatible models for testing

type SQLiteCompany struct {
	Code       int64     `gorm:"primaryKey;autoIncrement:false"`
	CNPJ       string    `gorm:"column:cnpj;uniqueIndex;not null"`
	ShortName  string    `gorm:"column:short_name;not null"`
	LegalName  string    `gorm:"column:legal_name;not null"`
	Street     string    `gorm:"column:street"`
	Number     string    `gorm:"column:number"`
	Complement *string   `gorm:"column:complement"`
	District   string    `gorm:"column:district"`
	City       string    `gorm:"column:city"`
	PostalCode string    `gorm:"column:postal_code"`
	State      string    `gorm:"column:state"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (SQLiteCompany) TableName() string { return "companies" }

type SQLiteUser struct {
	ID        int64     `gorm:"primaryKey"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	UserType  string    `gorm:"column:user_type"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string { return "users" }

type SQLiteCompanyGrant struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;not null;uniqueIndex:idx_company_grant"`
	CompanyCode int64     `gorm:"column:company_code;not null;uniqueIndex:idx_company_grant"`
	GrantedBy   *int64    `gorm:"column:granted_by"`
	GrantedAt   time.Time `gorm:"column:granted_at"`
}

func (SQLiteCompanyGrant) TableName() string { return "company_grants" }

var _ = Describe("Company Repository", func() {
	var (
		db      *gorm.DB
		repo    company.RepositoryAPI
		service *company.Service
	)

	newCompanyDTO := func(code int64, cnpj string) *company.CreateCompanyDTO {
		return &company.CreateCompanyDTO{
			Code:      code,
			CNPJ:      cnpj,
			ShortName: "Acme BR",
			LegalName: "Acme Brasil Ltda",
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteCompany{}, &SQLiteUser{}, &SQLiteCompanyGrant{})
		Expect(err).NotTo(HaveOccurred())

		repo = companyPostgres.NewCompanyRepository(db)
		service = company.NewService(repo, slog.Default())
	})

	Describe("CreateCompany", func() {
		It("creates and reads back a company", func() {
			c, err := service.CreateCompany(newCompanyDTO(1001, "12.345.678/0001-90"))
			Expect(err).NotTo(HaveOccurred())
			Expect(c.IsActive).To(BeTrue())

			got, err := service.GetCompany(1001)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ShortName).To(Equal("Acme BR"))
		})

		It("rejects a duplicate code", func() {
			_, err := service.CreateCompany(newCompanyDTO(1001, "12.345.678/0001-90"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateCompany(newCompanyDTO(1001, "98.765.432/0001-10"))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})

		It("rejects a duplicate CNPJ under a new code", func() {
			_, err := service.CreateCompany(newCompanyDTO(1001, "12.345.678/0001-90"))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.CreateCompany(newCompanyDTO(1002, "12.345.678/0001-90"))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeConflict))
		})
	})

	Describe("DeactivateCompany", func() {
		It("keeps the row and flips the flag", func() {
			_, err := service.CreateCompany(newCompanyDTO(1001, "12.345.678/0001-90"))
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeactivateCompany(1001)).To(Succeed())

			got, err := service.GetCompany(1001)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.IsActive).To(BeFalse())
		})

		It("returns not found for an unknown code", func() {
			Expect(service.DeactivateCompany(9999)).To(Equal(internal.ErrCompanyNotFound))
		})
	})

	Describe("GrantAccess", func() {
		var userID int64

		BeforeEach(func() {
			_, err := service.CreateCompany(newCompanyDTO(1001, "12.345.678/0001-90"))
			Expect(err).NotTo(HaveOccurred())

			u := &SQLiteUser{Email: "maria@mail.com", Name: "Maria", UserType: "normal", IsActive: true}
			Expect(db.Create(u).Error).To(Succeed())
			userID = u.ID
		})

		It("creates a grant row", func() {
			Expect(service.GrantAccess(1001, userID, nil)).To(Succeed())

			granted, err := repo.HasGrant(userID, 1001)
			Expect(err).NotTo(HaveOccurred())
			Expect(granted).To(BeTrue())
		})

		It("is idempotent for repeated grants", func() {
			Expect(service.GrantAccess(1001, userID, nil)).To(Succeed())
			Expect(service.GrantAccess(1001, userID, nil)).To(Succeed())

			var count int64
			Expect(db.Model(&SQLiteCompanyGrant{}).
				Where("user_id = ? AND company_code = ?", userID, 1001).
				Count(&count).Error).To(Succeed())
			Expect(count).To(Equal(int64(1)))
		})

		It("rejects an unknown user", func() {
			Expect(service.GrantAccess(1001, 424242, nil)).To(Equal(internal.ErrUserNotFound))
		})

		It("rejects an unknown company", func() {
			Expect(service.GrantAccess(9999, userID, nil)).To(Equal(internal.ErrCompanyNotFound))
		})
	})

	Describe("RevokeAccess", func() {
		It("removes the grant and allows re-granting", func() {
			_, err := service.CreateCompany(newCompanyDTO(1001, "12.345.678/0001-90"))
			Expect(err).NotTo(HaveOccurred())

			u := &SQLiteUser{Email: "maria@mail.com", Name: "Maria", UserType: "normal", IsActive: true}
			Expect(db.Create(u).Error).To(Succeed())

			Expect(service.GrantAccess(1001, u.ID, nil)).To(Succeed())
			Expect(service.RevokeAccess(1001, u.ID)).To(Succeed())

			granted, err := repo.HasGrant(u.ID, 1001)
			Expect(err).NotTo(HaveOccurred())
			Expect(granted).To(BeFalse())

			Expect(service.GrantAccess(1001, u.ID, nil)).To(Succeed())
		})
	})

	Describe("List", func() {
		It("filters by search and orders by short name", func() {
			for _, c := range []*companymodel.Company{
				{Code: 1, CNPJ: "11.111.111/0001-11", ShortName: "Zeta Corp", LegalName: "Zeta Corporação SA", IsActive: true},
				{Code: 2, CNPJ: "22.222.222/0001-22", ShortName: "Alfa Ltda", LegalName: "Alfa Comércio Ltda", IsActive: true},
				{Code: 3, CNPJ: "33.333.333/0001-33", ShortName: "Alfa Sul", LegalName: "Alfa Sul Serviços", IsActive: true},
			} {
				Expect(repo.Create(c)).To(Succeed())
			}

			result, err := service.ListCompanies(company.ListFilters{Search: "Alfa", Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(int64(2)))
			Expect(result.Companies[0].ShortName).To(Equal("Alfa Ltda"))
			Expect(result.Companies[1].ShortName).To(Equal("Alfa Sul"))
		})
	})
})
