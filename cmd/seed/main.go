package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"stayhub/internal/config"
	"stayhub/internal/database"
	"stayhub/internal/domain"
	"stayhub/internal/pkg/pincode"
	"stayhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (child tables first)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM wishlist_items")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM property_details")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	bookings := repository.NewBookingRepository(db)
	reviews := repository.NewReviewRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@stayhub.dev",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		FirstName:    "Site",
		LastName:     "Admin",
	}
	mustCreate(users.Create(ctx, admin))
	log.Println("Admin created: admin@stayhub.dev / admin123")

	hostHash, _ := bcrypt.GenerateFromPassword([]byte("host1234"), bcrypt.DefaultCost)
	hostUser := &domain.User{
		Email:        "marco@stayhub.dev",
		PasswordHash: string(hostHash),
		Role:         domain.RoleGuest,
		FirstName:    "Marco",
		LastName:     "Romano",
		CountryCode:  "IT",
		Currency:     "EUR",
	}
	mustCreate(users.Create(ctx, hostUser))

	guestHash, _ := bcrypt.GenerateFromPassword([]byte("guest1234"), bcrypt.DefaultCost)
	guest := &domain.User{
		Email:        "sigrun@stayhub.dev",
		PasswordHash: string(guestHash),
		Role:         domain.RoleGuest,
		FirstName:    "Sigrún",
		LastName:     "Jónsdóttir",
		CountryCode:  "IS",
	}
	mustCreate(users.Create(ctx, guest))

	// ================== PROPERTIES ==================
	log.Println("Creating properties...")

	type seedProperty struct {
		property domain.Property
		details  domain.PropertyDetails
	}

	usd, isk, chf := "USD", "ISK", "CHF"
	price := func(v float64) *float64 { return &v }

	seeds := []seedProperty{
		{
			property: domain.Property{
				Title: "Sea Voyager Villa", Lat: 40.6280, Lng: 14.4837,
				City: "Positano", Country: "Italy", IsListed: true,
			},
			details: domain.PropertyDetails{
				HostID: hostUser.ID, Street: "Via Pasitea", StreetNo: "98",
				Description: "Cliffside villa with a terrace over the Tyrrhenian Sea.",
				Guests:      6, Beds: 4, Bedrooms: 3, Bathrooms: 2,
				PriceNight: price(300), LocalCurrency: &usd,
			},
		},
		{
			property: domain.Property{
				Title: "Aurora Cottage", Lat: 65.5559, Lng: -19.4476,
				City: "Varmahlíð", Country: "Iceland", IsListed: true,
			},
			details: domain.PropertyDetails{
				HostID: hostUser.ID, Street: "Laugavegur", StreetNo: "12",
				Description: "Turf-roofed cottage under the northern lights.",
				Guests:      2, Beds: 1, Bedrooms: 1, Bathrooms: 1,
				PriceNight: price(24000), LocalCurrency: &isk,
			},
		},
		{
			property: domain.Property{
				Title: "Chalet Edelweiss", Lat: 46.6242, Lng: 8.0414,
				City: "Grindelwald", Country: "Switzerland", IsListed: true,
			},
			details: domain.PropertyDetails{
				HostID: hostUser.ID, Street: "Dorfstrasse", StreetNo: "45",
				Description: "Timber chalet facing the Eiger north face.",
				Guests:      8, Beds: 6, Bedrooms: 4, Bathrooms: 3,
				PriceNight: price(410), LocalCurrency: &chf,
			},
		},
	}

	var propertyIDs []int64
	for i := range seeds {
		p := seeds[i].property
		mustCreate(properties.Create(ctx, &p))
		seeds[i].details.PropertyID = p.ID
		mustCreate(properties.CreateDetails(ctx, &seeds[i].details))
		propertyIDs = append(propertyIDs, p.ID)
		log.Printf("Property created: %s (#%d)", p.Title, p.ID)
	}

	// ================== BOOKINGS ==================
	log.Println("Creating bookings...")

	today := time.Now().UTC().Truncate(24 * time.Hour)

	upcoming := &domain.Booking{
		PropertyID: propertyIDs[0],
		Email:      guest.Email,
		FirstName:  guest.FirstName, LastName: guest.LastName,
		CheckIn: today.AddDate(0, 0, 14), CheckOut: today.AddDate(0, 0, 18),
		Guests: 2, Status: domain.BookingConfirmed,
		PINCode:     pincode.New(),
		TotalAmount: 1200, TotalCurrency: usd,
	}
	mustCreate(bookings.Create(ctx, upcoming))

	finished := &domain.Booking{
		PropertyID: propertyIDs[1],
		Email:      guest.Email,
		FirstName:  guest.FirstName, LastName: guest.LastName,
		CheckIn: today.AddDate(0, 0, -30), CheckOut: today.AddDate(0, 0, -27),
		Guests: 2, Status: domain.BookingCompleted,
		PINCode:     pincode.New(),
		TotalAmount: 72000, TotalCurrency: isk,
	}
	mustCreate(bookings.Create(ctx, finished))

	// ================== REVIEWS ==================
	log.Println("Creating reviews...")

	review := &domain.Review{
		BookingID:  finished.ID,
		PropertyID: propertyIDs[1],
		UserID:     guest.ID,
		Rating:     5,
		Title:      "Unforgettable",
		Body:       "We watched the aurora from the hot tub two nights in a row.",
	}
	mustCreate(reviews.Create(ctx, review))

	rating := 5.0
	mustCreate(properties.SetRating(ctx, propertyIDs[1], &rating, 1))

	log.Println("Seed complete.")
}

func mustCreate(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
