package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/database/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type UserData struct {
	Email     string `yaml:"email"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Phone     string `yaml:"phone,omitempty"`
	Mobile    string `yaml:"mobile,omitempty"`
	Password  string `yaml:"password"`
	Role      string `yaml:"role"`
}

type CustomerData struct {
	Email        string         `yaml:"email"`
	FirstName    string         `yaml:"first_name"`
	LastName     string         `yaml:"last_name"`
	Phone        string         `yaml:"phone,omitempty"`
	Mobile       string         `yaml:"mobile,omitempty"`
	Company      string         `yaml:"company"`
	Existing     bool           `yaml:"existing"`
	SalesContact string         `yaml:"sales_contact,omitempty"`
	Contracts    []ContractData `yaml:"contracts,omitempty"`
}

type ContractData struct {
	Amount     int        `yaml:"amount"`
	PaymentDue string     `yaml:"payment_due"`
	Status     bool       `yaml:"status"`
	Event      *EventData `yaml:"event,omitempty"`
}

type EventData struct {
	SupportContact string `yaml:"support_contact,omitempty"`
	Attendees      int    `yaml:"attendees"`
	EventDate      string `yaml:"event_date"`
	Note           string `yaml:"note,omitempty"`
	Status         bool   `yaml:"status"`
}

// File structures
type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type CustomersFile struct {
	Customers []CustomerData `yaml:"customers"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.SeedRoleGroups(db); err != nil {
		log.Fatalf("Failed to seed role groups: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Configure database options to suppress verbose logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		// Only log every 10 attempts to reduce noise
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	var users UsersFile
	if err := walkYAML(dataDir, "users", func(data []byte) error {
		var file UsersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		users.Users = append(users.Users, file.Users...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	var customers CustomersFile
	if err := walkYAML(dataDir, "customers", func(data []byte) error {
		var file CustomersFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return err
		}
		customers.Customers = append(customers.Customers, file.Customers...)
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}

	groupMap, err := roleGroups(db)
	if err != nil {
		return err
	}

	// Create users first, customers reference them by email
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users.Users {
		user, created, err := createUser(db, userData, groupMap)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[userData.Email] = user
		if created {
			userCreated++
		}
	}
	log.Printf("Users: %d created, %d total", userCreated, len(users.Users))

	counts := struct{ customers, contracts, events int }{}
	for _, customerData := range customers.Customers {
		created, err := createCustomer(db, customerData, userMap, &counts.contracts, &counts.events)
		if err != nil {
			return fmt.Errorf("failed to create customer %s: %w", customerData.Email, err)
		}
		if created {
			counts.customers++
		}
	}
	log.Printf("Customers: %d created, %d total", counts.customers, len(customers.Customers))
	log.Printf("Contracts: %d created", counts.contracts)
	log.Printf("Events: %d created", counts.events)

	return nil
}

// walkYAML calls load with the content of every .yaml file under dataDir whose path contains kind
func walkYAML(dataDir, kind string, load func([]byte) error) error {
	return filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".yaml") || !strings.Contains(filepath.Base(path), kind) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := load(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		return nil
	})
}

func roleGroups(db *gorm.DB) (map[models.Role]*models.Group, error) {
	groupMap := make(map[models.Role]*models.Group)
	for _, role := range models.RolePrecedence {
		var group models.Group
		if err := db.Where("name = ?", string(role)).First(&group).Error; err != nil {
			return nil, fmt.Errorf("failed to query group %s: %w", role, err)
		}
		groupMap[role] = &group
	}
	return groupMap, nil
}

func createUser(db *gorm.DB, userData UserData, groupMap map[models.Role]*models.Group) (*models.User, bool, error) {
	var user models.User
	err := db.Preload("Groups").Where("email = ?", userData.Email).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query user: %w", err)
	}

	group, ok := groupMap[models.Role(userData.Role)]
	if !ok {
		return nil, false, fmt.Errorf("unknown role %q", userData.Role)
	}
	if userData.Password == "" {
		return nil, false, fmt.Errorf("password is required")
	}
	hash, err := auth.HashPassword(userData.Password)
	if err != nil {
		return nil, false, err
	}

	user = models.User{
		Email:        userData.Email,
		FirstName:    userData.FirstName,
		LastName:     userData.LastName,
		Phone:        userData.Phone,
		Mobile:       userData.Mobile,
		PasswordHash: hash,
		Groups:       []models.Group{*group},
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, true, nil
}

// contactID resolves a user email to its id. An empty email means no contact.
func contactID(email string, userMap map[string]*models.User) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	user, ok := userMap[email]
	if !ok {
		return nil, fmt.Errorf("unknown user %s", email)
	}
	return user, nil
}

func createCustomer(db *gorm.DB, customerData CustomerData, userMap map[string]*models.User, contracts, events *int) (bool, error) {
	var customer models.Customer
	err := db.Where("email = ?", customerData.Email).First(&customer).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to query customer: %w", err)
	}

	sales, err := contactID(customerData.SalesContact, userMap)
	if err != nil {
		return false, err
	}

	customer = models.Customer{
		FirstName: customerData.FirstName,
		LastName:  customerData.LastName,
		Phone:     customerData.Phone,
		Mobile:    customerData.Mobile,
		Email:     customerData.Email,
		Company:   customerData.Company,
		Existing:  customerData.Existing,
	}
	if sales != nil {
		customer.SalesContactID = &sales.ID
	}

	return true, db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("SalesContact").Create(&customer).Error; err != nil {
			return fmt.Errorf("failed to create customer: %w", err)
		}
		for _, contractData := range customerData.Contracts {
			if err := createContract(tx, &customer, contractData, userMap, events); err != nil {
				return err
			}
			*contracts++
		}
		return nil
	})
}

func createContract(tx *gorm.DB, customer *models.Customer, contractData ContractData, userMap map[string]*models.User, events *int) error {
	due, err := time.Parse("2006-01-02", contractData.PaymentDue)
	if err != nil {
		return fmt.Errorf("invalid payment_due %q: %w", contractData.PaymentDue, err)
	}

	contract := models.Contract{
		CustomerID:     customer.ID,
		SalesContactID: customer.SalesContactID,
		Amount:         contractData.Amount,
		PaymentDue:     due,
		Status:         contractData.Status,
		EventCreated:   contractData.Event != nil,
	}
	if err := tx.Omit("Customer", "SalesContact").Create(&contract).Error; err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}

	if contractData.Event == nil {
		return nil
	}

	eventData := contractData.Event
	date, err := time.Parse("2006-01-02T15:04:05Z", eventData.EventDate)
	if err != nil {
		return fmt.Errorf("invalid event_date %q: %w", eventData.EventDate, err)
	}
	support, err := contactID(eventData.SupportContact, userMap)
	if err != nil {
		return err
	}

	event := models.Event{
		CustomerID: customer.ID,
		ContractID: &contract.ID,
		Attendees:  eventData.Attendees,
		EventDate:  date,
		Note:       eventData.Note,
		Status:     eventData.Status,
	}
	if support != nil {
		event.SupportContactID = &support.ID
	}
	if err := tx.Omit("Customer", "Contract", "SupportContact").Create(&event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	*events++
	return nil
}
