package memory

import (
	"time"

	"backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is the shared login password for all seeded demo accounts
const DemoPassword = "heritage-demo"

// Seed loads the demo users, sites and material catalog so the app is
// usable without a database.
func (s *Store) Seed() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()

	users := []model.User{
		{Email: "sean.murphy@conservation.ie", Name: "Sean Murphy", Role: model.RoleSurveyor},
		{Email: "aoife.brennan@heritage.ie", Name: "Aoife Brennan", Role: model.RoleConservationOfficer},
		{Email: "patrick.kelly@budgets.ie", Name: "Patrick Kelly", Role: model.RoleBudgetHolder},
		{Email: "mary.oconnor@ironworks.ie", Name: "Mary O'Connor", Role: model.RoleContractor},
		{Email: "admin@castles.ie", Name: "Admin User", Role: model.RoleAdmin},
	}
	for i := range users {
		users[i].ID = uuid.New()
		users[i].Password = string(hash)
		users[i].CreatedAt = now
		users[i].UpdatedAt = now
	}
	s.users = append(s.users, users...)

	sites := []model.Site{
		{Name: "Bunratty Castle", Location: "County Clare", Description: "A 15th-century tower house in County Clare, Ireland."},
		{Name: "Ross Castle", Location: "County Kerry", Description: "A 15th-century tower house on the edge of Lough Leane."},
		{Name: "Dunluce Castle", Location: "County Antrim", Description: "A now-ruined medieval castle on the Antrim coast."},
		{Name: "Kilkenny Castle", Location: "County Kilkenny", Description: "A castle in Kilkenny, Ireland built in 1195."},
		{Name: "Cahir Castle", Location: "County Tipperary", Description: "One of the largest castles in Ireland, on an island in the River Suir."},
	}
	for i := range sites {
		sites[i].ID = uuid.New()
		sites[i].CreatedAt = now
	}
	s.sites = append(s.sites, sites...)

	materials := []model.MaterialCatalogItem{
		{Name: "European Oak (Seasoned)", Category: "Timber", Unit: "m³", UnitPrice: decimal.NewFromInt(2500), Supplier: "Irish Oak Furniture", SupplierContact: "info@irishoakfurniture.ie", HeritageGrade: model.GradeConservation, Description: "Kiln-dried European oak suitable for heritage door restoration"},
		{Name: "Hand-forged Door Hinges", Category: "Ironmongery", Unit: "pair", UnitPrice: decimal.NewFromInt(180), Supplier: "The Blacksmith Shop", SupplierContact: "orders@blacksmithshop.ie", HeritageGrade: model.GradeConservation, Description: "Traditional hand-forged wrought iron hinges"},
		{Name: "Traditional Lime Mortar", Category: "Masonry", Unit: "25kg bag", UnitPrice: decimal.NewFromInt(35), Supplier: "Clogrennane Lime", SupplierContact: "sales@clogrennane.ie", HeritageGrade: model.GradeConservation, Description: "Hydraulic lime mortar for heritage buildings"},
		{Name: "Linseed Oil (Cold-pressed)", Category: "Finishes", Unit: "5L", UnitPrice: decimal.NewFromInt(85), Supplier: "Traditional Paint", SupplierContact: "info@traditionalpaint.ie", HeritageGrade: model.GradeConservation, Description: "Pure cold-pressed linseed oil for timber treatment"},
		{Name: "Beeswax Polish", Category: "Finishes", Unit: "500ml", UnitPrice: decimal.NewFromInt(25), Supplier: "Irish Beeswax", SupplierContact: "contact@irishbeeswax.ie", HeritageGrade: model.GradeStandard, Description: "Natural beeswax furniture and door polish"},
		{Name: "Wrought Iron Studs", Category: "Ironmongery", Unit: "pack of 100", UnitPrice: decimal.NewFromInt(220), Supplier: "The Blacksmith Shop", SupplierContact: "orders@blacksmithshop.ie", HeritageGrade: model.GradeConservation, Description: "Hand-forged iron studs for plank doors"},
	}
	for i := range materials {
		materials[i].ID = uuid.New()
		materials[i].CreatedAt = now
	}
	s.materials = append(s.materials, materials...)

	return nil
}
