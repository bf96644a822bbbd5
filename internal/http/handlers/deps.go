package handlers

import (
	"hardstore/internal/repos"
	"hardstore/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	DashboardHandler *DashboardHandler
	CustomerHandler  *CustomerHandler
	ProductHandler   *ProductHandler
	LookupHandler    *LookupHandler
	InvoiceHandler   *InvoiceHandler
	ReportHandler    *ReportHandler
}

func NewDeps(db *sqlx.DB) *Deps {
	custRepo := repos.NewCustomerRepo(db)
	prodRepo := repos.NewProductRepo(db)
	lookRepo := repos.NewLookupRepo(db)
	invRepo := repos.NewInvoiceRepo(db)
	stockRepo := repos.NewStockTxRepo(db)
	reportRepo := repos.NewReportRepo(db)

	ledger := services.NewLedgerService(db, invRepo, prodRepo, stockRepo, reportRepo)
	catalog := services.NewCatalogService(db, prodRepo, stockRepo)

	return &Deps{
		DashboardHandler: &DashboardHandler{Reports: reportRepo},
		CustomerHandler:  &CustomerHandler{Customers: custRepo, Ledger: ledger},
		ProductHandler:   &ProductHandler{Catalog: catalog},
		LookupHandler:    &LookupHandler{Lookups: lookRepo},
		InvoiceHandler:   &InvoiceHandler{Ledger: ledger},
		ReportHandler:    &ReportHandler{Ledger: ledger},
	}
}
