package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/ricebowl/internal/entity"
	repo "github.com/Additional-Code/ricebowl/internal/repository/order"
)

// Module provides the seeder to Fx.
var Module = fx.Provide(New)

// Seeder loads sample orders into the in-memory store for local/dev setups.
type Seeder struct {
	repo   *repo.Repository
	logger *zap.Logger
}

// New constructs a Seeder backed by the order repository.
func New(repository *repo.Repository, logger *zap.Logger) *Seeder {
	return &Seeder{repo: repository, logger: logger}
}

// Orders seeds the canonical sample orders if they are missing.
func (s *Seeder) Orders(ctx context.Context) error {
	seeded := 0
	for _, sample := range sampleOrders() {
		order := sample
		if s.repo.Exists(order.OrderID) {
			continue
		}
		if _, err := s.repo.Insert(ctx, &order); err != nil {
			return err
		}
		seeded++
	}

	if s.logger != nil {
		s.logger.Info("seeded orders", zap.Int("count", seeded))
	}
	return nil
}

// Generate inserts count additional faker-built orders.
func (s *Seeder) Generate(ctx context.Context, count int) error {
	if count <= 0 {
		return nil
	}

	fake := faker.New()
	riceTypes := []string{"Nasi Goreng Special", "Nasi Goreng Ayam", "Nasi Goreng Seafood", "Nasi Goreng Kampung", "Nasi Goreng Pete"}
	spiceLevels := []string{"Mild", "Medium", "Hot", "Extra Hot"}
	payments := []string{"Cash", "Credit Card", "Debit Card", "E-Wallet"}
	statuses := entity.Statuses()

	var errs []error
	for i := 0; i < count; i++ {
		person := fake.Person()
		address := fake.Address()

		itemCount := fake.IntBetween(1, 3)
		items := make([]entity.OrderItem, 0, itemCount)
		for j := 0; j < itemCount; j++ {
			items = append(items, entity.OrderItem{
				ItemID:       uuid.NewString(),
				RiceType:     riceTypes[fake.IntBetween(0, len(riceTypes)-1)],
				Quantity:     fake.IntBetween(1, 4),
				PricePerUnit: decimal.NewFromInt(int64(fake.IntBetween(6, 12)) * 5000),
				SpiceLevel:   spiceLevels[fake.IntBetween(0, len(spiceLevels)-1)],
			})
		}

		order := entity.Order{
			OrderID: fmt.Sprintf("GEN-%s", uuid.NewString()),
			Customer: &entity.Customer{
				CustomerID:  uuid.NewString(),
				Name:        person.Name(),
				Email:       person.Contact().Email,
				PhoneNumber: person.Contact().Phone,
			},
			Items: items,
			DeliveryAddress: &entity.DeliveryAddress{
				Street:     address.StreetAddress(),
				City:       address.City(),
				State:      address.State(),
				PostalCode: address.PostCode(),
				Country:    address.Country(),
			},
			Status:        statuses[fake.IntBetween(0, len(statuses)-1)],
			PaymentMethod: payments[fake.IntBetween(0, len(payments)-1)],
		}

		if _, err := s.repo.Insert(ctx, &order); err != nil {
			errs = append(errs, err)
		}
	}

	if s.logger != nil {
		s.logger.Info("generated orders", zap.Int("requested", count), zap.Int("failed", len(errs)))
	}
	return errors.Join(errs...)
}

func sampleOrders() []entity.Order {
	now := time.Now()
	price := func(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
	at := func(t time.Time) *time.Time { return &t }

	return []entity.Order{
		{
			OrderID: "ORD001",
			Customer: &entity.Customer{
				CustomerID:  "CUST001",
				Name:        "Ahmad Rizki",
				Email:       "ahmad.rizki@email.com",
				PhoneNumber: "+62-812-3456-7890",
			},
			Items: []entity.OrderItem{
				{ItemID: "ITEM001", RiceType: "Nasi Goreng Special", Quantity: 2, PricePerUnit: price(45000), SpiceLevel: "Medium", Notes: "Extra shrimp please"},
				{ItemID: "ITEM002", RiceType: "Nasi Goreng Ayam", Quantity: 1, PricePerUnit: price(35000), SpiceLevel: "Mild", Notes: "No vegetables"},
			},
			DeliveryAddress: &entity.DeliveryAddress{
				Street:       "Jl. Sudirman No. 123",
				City:         "Jakarta",
				State:        "DKI Jakarta",
				PostalCode:   "12190",
				Country:      "Indonesia",
				Instructions: "Please call upon arrival",
			},
			Status:        entity.StatusDelivered,
			OrderDate:     now.Add(-48 * time.Hour),
			DeliveryTime:  at(now.Add(-47 * time.Hour)),
			PaymentMethod: "Credit Card",
		},
		{
			OrderID: "ORD002",
			Customer: &entity.Customer{
				CustomerID:  "CUST002",
				Name:        "Siti Nurhaliza",
				Email:       "siti.nur@email.com",
				PhoneNumber: "+62-821-9876-5432",
			},
			Items: []entity.OrderItem{
				{ItemID: "ITEM003", RiceType: "Nasi Goreng Seafood", Quantity: 3, PricePerUnit: price(55000), SpiceLevel: "Hot", Notes: "Extra sambal"},
			},
			DeliveryAddress: &entity.DeliveryAddress{
				Street:       "Jl. Gatot Subroto No. 456",
				City:         "Bandung",
				State:        "West Java",
				PostalCode:   "40123",
				Country:      "Indonesia",
				Instructions: "Ring doorbell twice",
			},
			Status:        entity.StatusOutForDelivery,
			OrderDate:     now.Add(-3 * time.Hour),
			DeliveryTime:  at(now.Add(30 * time.Minute)),
			PaymentMethod: "Cash",
		},
		{
			OrderID: "ORD003",
			Customer: &entity.Customer{
				CustomerID:  "CUST003",
				Name:        "Budi Santoso",
				Email:       "budi.santoso@email.com",
				PhoneNumber: "+62-813-5555-1234",
			},
			Items: []entity.OrderItem{
				{ItemID: "ITEM004", RiceType: "Nasi Goreng Kampung", Quantity: 2, PricePerUnit: price(30000), SpiceLevel: "Extra Hot", Notes: "With fried egg on top"},
				{ItemID: "ITEM005", RiceType: "Nasi Goreng Pete", Quantity: 1, PricePerUnit: price(40000), SpiceLevel: "Medium", Notes: "Extra pete"},
			},
			DeliveryAddress: &entity.DeliveryAddress{
				Street:       "Jl. Diponegoro No. 789",
				City:         "Surabaya",
				State:        "East Java",
				PostalCode:   "60241",
				Country:      "Indonesia",
				Instructions: "Leave at security desk",
			},
			Status:        entity.StatusPreparing,
			OrderDate:     now.Add(-45 * time.Minute),
			DeliveryTime:  at(now.Add(time.Hour)),
			PaymentMethod: "E-Wallet",
		},
		{
			OrderID: "ORD004",
			Customer: &entity.Customer{
				CustomerID:  "CUST004",
				Name:        "Dewi Lestari",
				Email:       "dewi.lestari@email.com",
				PhoneNumber: "+62-822-7777-8888",
			},
			Items: []entity.OrderItem{
				{ItemID: "ITEM006", RiceType: "Nasi Goreng Special", Quantity: 4, PricePerUnit: price(45000), SpiceLevel: "Mild", Notes: "Family size portion"},
			},
			DeliveryAddress: &entity.DeliveryAddress{
				Street:       "Jl. Thamrin No. 321",
				City:         "Yogyakarta",
				State:        "Special Region of Yogyakarta",
				PostalCode:   "55511",
				Country:      "Indonesia",
				Instructions: "Apartment unit 5B",
			},
			Status:        entity.StatusConfirmed,
			OrderDate:     now.Add(-20 * time.Minute),
			DeliveryTime:  at(now.Add(50 * time.Minute)),
			PaymentMethod: "Debit Card",
		},
		{
			OrderID: "ORD005",
			Customer: &entity.Customer{
				CustomerID:  "CUST005",
				Name:        "Eko Prasetyo",
				Email:       "eko.prasetyo@email.com",
				PhoneNumber: "+62-856-4444-9999",
			},
			Items: []entity.OrderItem{
				{ItemID: "ITEM007", RiceType: "Nasi Goreng Ayam", Quantity: 1, PricePerUnit: price(35000), SpiceLevel: "Hot", Notes: "Extra crispy"},
				{ItemID: "ITEM008", RiceType: "Nasi Goreng Seafood", Quantity: 1, PricePerUnit: price(55000), SpiceLevel: "Medium", Notes: "No squid"},
				{ItemID: "ITEM009", RiceType: "Nasi Goreng Kampung", Quantity: 2, PricePerUnit: price(30000), SpiceLevel: "Mild", Notes: "Regular portion"},
			},
			DeliveryAddress: &entity.DeliveryAddress{
				Street:       "Jl. Ahmad Yani No. 567",
				City:         "Semarang",
				State:        "Central Java",
				PostalCode:   "50149",
				Country:      "Indonesia",
				Instructions: "Office building, 3rd floor",
			},
			Status:        entity.StatusPending,
			OrderDate:     now.Add(-5 * time.Minute),
			DeliveryTime:  at(now.Add(2 * time.Hour)),
			PaymentMethod: "Cash",
		},
	}
}
