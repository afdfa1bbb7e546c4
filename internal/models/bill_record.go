package models

import "fmt"

// BillRecord represents one generated parking invoice
type BillRecord struct {
	ID           string `json:"id" gorm:"column:id;primarykey"`
	CustomerName string `json:"name" gorm:"column:customer_name"`
	VehicleNo    string `json:"vehicle_no" gorm:"column:vehicle_no"`
	VehicleType  string `json:"vehicle_type" gorm:"column:vehicle_type"`
	SlotNumber   string `json:"slot_number" gorm:"column:slot_number"`
	Month        string `json:"month" gorm:"column:month"`
	Year         string `json:"year" gorm:"column:year"`
	PaymentMode  string `json:"payment_mode" gorm:"column:payment_mode"`
	BillDate     string `json:"bill_date" gorm:"column:bill_date"`
	BillAmount   string `json:"bill_amount" gorm:"column:bill_amount"`
	CreatedBy    string `json:"created_by,omitempty" gorm:"column:created_by"`
}

// TableName sets the insert table name for BillRecord
func (BillRecord) TableName() string {
	return "bill_records"
}

// Period returns the composite "Month Year" billing period key
func (r BillRecord) Period() string {
	return r.Month + " " + r.Year
}

// ParkingSlots is the fixed set of 14 slot identifiers
var ParkingSlots = func() []string {
	slots := make([]string, 0, 14)
	for i := 1; i <= 14; i++ {
		slots = append(slots, fmt.Sprintf("SLOT-%02d", i))
	}
	return slots
}()

// Months lists the billing month names in calendar order
var Months = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Years lists the selectable billing years
var Years = func() []string {
	years := make([]string, 0, 30)
	for y := 2020; y < 2050; y++ {
		years = append(years, fmt.Sprintf("%d", y))
	}
	return years
}()

// VehicleTypes lists the accepted vehicle type tokens
var VehicleTypes = []string{"car", "bike", "auto", "truck", "other"}

// PaymentModes lists the accepted payment modes
var PaymentModes = []string{"Cash", "Online", "Card", "UPI"}

// ValidSlot reports whether slot is one of the 14 fixed identifiers
func ValidSlot(slot string) bool {
	return contains(ParkingSlots, slot)
}

// ValidMonth reports whether month is one of the 12 month names
func ValidMonth(month string) bool {
	return contains(Months, month)
}

// ValidYear reports whether year is within the selectable range
func ValidYear(year string) bool {
	return contains(Years, year)
}

// ValidVehicleType reports whether vehicleType is an accepted token
func ValidVehicleType(vehicleType string) bool {
	return contains(VehicleTypes, vehicleType)
}

// ValidPaymentMode reports whether mode is an accepted payment mode
func ValidPaymentMode(mode string) bool {
	return contains(PaymentModes, mode)
}

func contains(options []string, value string) bool {
	for _, opt := range options {
		if opt == value {
			return true
		}
	}
	return false
}
