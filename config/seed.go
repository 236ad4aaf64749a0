// config/seed.go
package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/nirmaantech/portal_backend/models"
)

// SeedDatabase loads the initial demo dataset into empty collections.
// Collections that already hold documents are left untouched, so the
// seed is safe to run on every startup.
func SeedDatabase(client *mongo.Client) {
	if os.Getenv("SKIP_SEED") == "true" {
		log.Println("SKIP_SEED set, skipping database seed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	seedUsers(ctx, client)
	seedProducts(ctx, client)
	seedScripts(ctx, client)
	seedLeads(ctx, client)
}

func collectionEmpty(ctx context.Context, coll *mongo.Collection) bool {
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Error counting %s documents: %v", coll.Name(), err)
		return false
	}
	return count == 0
}

func hashPassword(plain string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing seed password: %v", err)
		return ""
	}
	return string(hash)
}

func seedUsers(ctx context.Context, client *mongo.Client) {
	coll := GetCollection(client, "users")
	if !collectionEmpty(ctx, coll) {
		return
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "NIRMAANADMIN"
	}

	now := time.Now()
	seed := []models.User{
		{Username: "admin", Name: "Administrator", Password: hashPassword(adminPassword), Role: models.RoleAdmin},
		{Username: "T1", Name: "Priya", Password: hashPassword("T1"), Role: models.RoleTelecaller, Phone: "9876543210"},
		{Username: "T2", Name: "Rohan", Password: hashPassword("T2"), Role: models.RoleTelecaller, Phone: "9876543211"},
		{Username: "T3", Name: "Supriya", Password: hashPassword("T3"), Role: models.RoleTelecaller, Phone: "9876543212"},
		{Username: "F1", Name: "Raju Traders", Password: hashPassword("F1"), Role: models.RoleFranchise, City: "Bangalore", Phone: "9900112233", Plan: models.PlanPaid, RegistrationDate: "2024-01-01"},
		{Username: "F2", Name: "Shakti Services", Password: hashPassword("F2"), Role: models.RoleFranchise, City: "Mysore", Phone: "9900112234", Plan: models.PlanBasic, RegistrationDate: "2025-11-25"},
		{Username: "F3", Name: "Expired Demo", Password: hashPassword("F3"), Role: models.RoleFranchise, City: "Hubli", Phone: "9900112235", Plan: models.PlanBasic, RegistrationDate: "2023-01-01"},
		{Username: "P1", Name: "Amit", Password: hashPassword("P1"), Role: models.RolePartner, Phone: "8877665544"},
		{Username: "P2", Name: "Divya", Password: hashPassword("P2"), Role: models.RolePartner, Phone: "8877665545"},
		{Username: "V1", Name: "Decor World", Password: hashPassword("V1"), Role: models.RoleVendor, City: "Bangalore", Phone: "7766554433", Plan: models.PlanBasic, RegistrationDate: "2024-01-01"},
		{Username: "V2", Name: "Tech Solutions", Password: hashPassword("V2"), Role: models.RoleVendor, City: "Pune", Phone: "7766554434", Plan: models.PlanPaid, RegistrationDate: "2024-01-01"},
	}

	docs := make([]interface{}, 0, len(seed))
	for i := range seed {
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
		docs = append(docs, seed[i])
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Printf("Error seeding users: %v", err)
		return
	}
	log.Printf("Seeded %d users", len(docs))
}

func seedProducts(ctx context.Context, client *mongo.Client) {
	coll := GetCollection(client, "products")
	if !collectionEmpty(ctx, coll) {
		return
	}

	now := time.Now()
	seed := []models.Product{
		{
			ID: 1, SKU: "WP-FT-001", PriceType: models.PriceUnit, UnitLabel: "sqft",
			Category: "Interior Decor", City: "Bangalore", Name: "Feathertouch Designer Wallpaper",
			MRP: 1500, UnitRateMRP: 30, UnitRateSelling: 26, UnitRateFranchise: 19,
			SellingPrice: 1300, FranchisePrice: 950,
			ShortDescription: "Premium designer wallpaper (21 inches x 33 ft). Price calculated per square foot.",
			Reviews: []models.ProductReview{
				{Rating: 5, Comment: "Excellent quality and easy to install. Highly recommend!", Reviewer: "Priya S.", Date: "2024-10-01"},
			},
			IsVisible: true, VendorID: "V1",
		},
		{
			ID: 2, SKU: "WP-PD-002", PriceType: models.PriceUnit, UnitLabel: "sqft",
			Category: "Interior Decor", City: "Bangalore", Name: "Pandora Designer Wallpaper",
			MRP: 1500, UnitRateMRP: 35, UnitRateSelling: 28, UnitRateFranchise: 21,
			SellingPrice: 1300, FranchisePrice: 950,
			ShortDescription: "High-quality wallpaper. Price calculated per square foot.",
			Reviews: []models.ProductReview{
				{Rating: 4, Comment: "Good value, but delivery took a week.", Reviewer: "Rohan M.", Date: "2024-10-15"},
			},
			IsVisible: true, VendorID: "V1",
		},
		{
			ID: 3, SKU: "DM-BPA-003", PriceType: models.PriceFixed,
			Category: "Digital Marketing", City: "All Karnataka", Name: "Basic Package WPA (Web + Ads)",
			MRP: 10000, SellingPrice: 6000, FranchisePrice: 4500,
			ShortDescription: "4-page professional website, social media setup, 8 festival ad banners, 1 Meta Ads campaign setup.",
			Reviews: []models.ProductReview{
				{Rating: 5, Comment: "Affordable start-up package. Met all expectations!", Reviewer: "Kavita A.", Date: "2025-11-05"},
			},
			IsVisible: true, VendorID: models.SystemVendorID,
		},
		{
			ID: 4, SKU: "DM-PRO-004", PriceType: models.PricePercentage,
			Category: "Digital Marketing", City: "All Karnataka", Name: "Pro Package WPA (Percentage)",
			MRP: 10, SellingPrice: 6, FranchisePrice: 5,
			SellingPriceThreshold: 500000, FranchisePercentAbove: 4, FranchisePercentBelow: 5,
			ShortDescription: "Professional digital marketing package billed as a percentage of project value.",
			Reviews: []models.ProductReview{
				{Rating: 3, Comment: "SEO results are slow, but telecalling support is great.", Reviewer: "Vijay C.", Date: "2025-09-10"},
			},
			IsVisible: true, VendorID: models.SystemVendorID,
		},
		{
			ID: 5, SKU: "WP-PD-005", PriceType: models.PriceFixed,
			Category: "Interior Decor", City: "Bangalore", Name: "Luxury Silk Finish Roll",
			MRP: 5000, SellingPrice: 3500, FranchisePrice: 2500,
			ShortDescription: "Exclusive silk-finish roll. Easy maintenance.",
			IsVisible: true, VendorID: "V1",
		},
		{
			ID: 6, SKU: "BI-LP-006", PriceType: models.PriceFixed,
			Category: "Loans", City: "Chennai", Name: "Loan Processing Fee (Business)",
			MRP: 10000, SellingPrice: 7500, FranchisePrice: 5000,
			ShortDescription: "Fee for processing standard SME business loan applications.",
			IsVisible: true, VendorID: models.SystemVendorID,
		},
		{
			ID: 7, SKU: "DM-ES-007", PriceType: models.PriceFixed,
			Category: "Digital Marketing", City: "Pune", Name: "E-Commerce Setup Package",
			MRP: 50000, SellingPrice: 30000, FranchisePrice: 20000,
			ShortDescription: "Full 10-page e-commerce store setup using Shopify/WooCommerce.",
			IsVisible: true, VendorID: models.SystemVendorID,
		},
		{
			ID: 8, SKU: "WP-TC-008", PriceType: models.PriceUnit, UnitLabel: "sqft",
			Category: "Interior Decor", City: "Bangalore", Name: "Textured Concrete Wall Finish",
			MRP: 4000, UnitRateMRP: 80, UnitRateSelling: 65, UnitRateFranchise: 40,
			SellingPrice: 3250, FranchisePrice: 2000,
			ShortDescription: "Modern industrial textured wall finish application.",
			IsVisible: true, VendorID: "V1",
		},
		{
			ID: 12, SKU: "BI-FL-012", PriceType: models.PriceFixed,
			Category: "Franchise", City: "All Karnataka", Name: "NirmaanTech Store Franchise License",
			MRP: 60000, SellingPrice: 36000, FranchisePrice: 27000,
			ShortDescription: "Single page E-commerce setup, product onboarding, full SMM, Paid Ads setup support. Franchise profit margin applies.",
			IsVisible: false, VendorID: models.SystemVendorID,
		},
	}

	docs := make([]interface{}, 0, len(seed))
	for i := range seed {
		seed[i].CreatedAt = now
		seed[i].UpdatedAt = now
		docs = append(docs, seed[i])
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Printf("Error seeding products: %v", err)
		return
	}
	log.Printf("Seeded %d products", len(docs))
}

func seedScripts(ctx context.Context, client *mongo.Client) {
	coll := GetCollection(client, "scripts")
	if !collectionEmpty(ctx, coll) {
		return
	}

	seed := []models.CentralScript{
		{
			ID: 1, Category: "General",
			MainScript: "Hi, my name is [CallerName] from NirmaanTech. We are India's first AI-based platform providing low-cost vendor products and services, including [CategoryList]. What category are you most interested in today?",
			SubScripts: []models.SubScript{
				{Title: "Initial Query", Script: "Start by confirming the customer's initial inquiry source and requirement."},
			},
			AssignedRoles: []string{"T1", "P1", "F1"},
		},
		{
			ID: 2, Category: "Loans",
			MainScript: "I see you inquired about our Loan services. We specialize in Personal (up to 5L) and Business loans.",
			SubScripts: []models.SubScript{
				{Title: "Personal Loan Docs", Script: "To process a Personal loan, verify documents: PAN, Aadhar, 6 months bank statements."},
				{Title: "Business Loan Docs", Script: "For Business loans, request 1 year GST returns and business bank statements."},
				{Title: "Next Step", Script: "If satisfied, schedule a physical/virtual appointment for document collection."},
			},
			AssignedRoles: []string{"P1", "T1"},
		},
		{
			ID: 3, Category: "Digital Marketing",
			MainScript: "You showed interest in Digital Marketing solutions (Website, SEO, SMM). Are you looking for brand launch or existing business boost?",
			SubScripts: []models.SubScript{
				{Title: "Website Inquiry", Script: "Ask about target pages (e.g., 4-page static vs. 10-page e-commerce)."},
				{Title: "Ad Campaign Pitch", Script: "Pitch the Meta Ads campaign setup included in the basic package."},
			},
			AssignedRoles: []string{"T1", "F1"},
		},
	}

	docs := make([]interface{}, 0, len(seed))
	for i := range seed {
		docs = append(docs, seed[i])
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Printf("Error seeding scripts: %v", err)
		return
	}
	log.Printf("Seeded %d scripts", len(docs))
}

func seedLeads(ctx context.Context, client *mongo.Client) {
	coll := GetCollection(client, "leads")
	if !collectionEmpty(ctx, coll) {
		return
	}

	seed := []models.Lead{
		{
			LeadID: 101, TelecallerID: "T1",
			CustomerName: "Sumanth B.", CustomerPhone: "9876543210",
			ProductRequirement: "Loans", Source: "Facebook Ad", CurrentStatus: "Follow-Up",
			ContactHistory: []models.ContactHistoryEntry{
				{Status: "Pending", Comments: "Initial lead entry.", CallDate: "2025-11-01", LoggedBy: "System"},
				{Status: "Contacted", Comments: "Requested details on SME loans.", CallDate: "2025-11-02", CallTimeSeconds: 95, NextFollowupDate: "2025-11-05", LoggedBy: "T1"},
				{Status: "Interested", Comments: "Shared documents. Follow up for processing fee.", CallDate: "2025-11-05", CallTimeSeconds: 150, NextFollowupDate: "2025-11-07", LoggedBy: "T1"},
				{Status: "Follow-Up", Comments: "Pending document verification.", CallDate: "2025-11-07", CallTimeSeconds: 70, NextFollowupDate: "2025-11-10", LoggedBy: "T1"},
			},
		},
		{
			LeadID: 102, TelecallerID: "T2",
			CustomerName: "Kavita R.", CustomerPhone: "9988776655",
			ProductRequirement: "Digital Marketing", Source: "Website Form", CurrentStatus: "Appointment Scheduled",
			ContactHistory: []models.ContactHistoryEntry{
				{Status: "Pending", Comments: "Initial lead entry.", CallDate: "2025-11-01", LoggedBy: "System"},
				{Status: "Contacted", Comments: "Needs e-commerce site. Booked demo.", CallDate: "2025-11-03", CallTimeSeconds: 220, NextFollowupDate: "2025-11-15", LoggedBy: "T2"},
				{Status: "Appointment Scheduled", Comments: "Demo confirmed for 15th.", CallDate: "2025-11-08", CallTimeSeconds: 35, NextFollowupDate: "2025-11-15", LoggedBy: "T2"},
			},
		},
		{
			LeadID: 103, AssignedPartnerID: "P2",
			CustomerName: "Ganesh M.", CustomerPhone: "8899001122",
			ProductRequirement: "Interior Decor", Source: "Instagram", CurrentStatus: "Not Interested",
			ContactHistory: []models.ContactHistoryEntry{
				{Status: "Pending", Comments: "Initial lead entry.", CallDate: "2025-11-04", LoggedBy: "System"},
				{Status: "Not Interested", Comments: "Already hired a local vendor. Cold.", CallDate: "2025-11-04", CallTimeSeconds: 50, LoggedBy: "T1"},
			},
		},
		{
			LeadID: 104, TelecallerID: "T2",
			CustomerName: "Priya S.", CustomerPhone: "7766554433",
			ProductRequirement: "Franchise", Source: "Referral", CurrentStatus: "Pending",
			ContactHistory: []models.ContactHistoryEntry{
				{Status: "Pending", Comments: "Initial lead entry.", CallDate: "2025-11-10", LoggedBy: "System"},
			},
		},
		{
			LeadID: 105, AssignedFranchiseID: "F1",
			CustomerName: "Ravi V.", CustomerPhone: "9000111222",
			ProductRequirement: "Loans", Source: "Website Form", CurrentStatus: "Appointment Conducted",
			ContactHistory: []models.ContactHistoryEntry{
				{Status: "Pending", Comments: "Initial lead entry.", CallDate: "2025-11-10", LoggedBy: "System"},
				{Status: "Interested", Comments: "Sent to F1.", CallDate: "2025-11-11", CallTimeSeconds: 60, NextFollowupDate: "2025-11-12", LoggedBy: "T1"},
				{Status: "Appointment Conducted", Comments: "F1 Visit complete. Waiting for payment.", CallDate: "2025-11-12", CallTimeSeconds: 120, NextFollowupDate: "2025-11-15", LoggedBy: "F1"},
			},
		},
		{
			LeadID: 106, TelecallerID: "T1",
			CustomerName: "Deepa K.", CustomerPhone: "8765432109",
			ProductRequirement: "Digital Marketing", Source: "LinkedIn", CurrentStatus: "Pending",
			ContactHistory: []models.ContactHistoryEntry{
				{Status: "Pending", Comments: "Initial lead entry.", CallDate: "2025-11-11", LoggedBy: "System"},
			},
		},
	}

	docs := make([]interface{}, 0, len(seed))
	for i := range seed {
		docs = append(docs, seed[i])
	}

	if _, err := coll.InsertMany(ctx, docs); err != nil {
		log.Printf("Error seeding leads: %v", err)
		return
	}
	log.Printf("Seeded %d leads", len(docs))
}
