package adoption

import "github.com/taranjeetsingh9/PetConnectBackend-sub000/internal/repository"

const (
	baseFee              = 100
	youngAnimalSurcharge = 50
	specialNeedsDiscount = 30

	FeeCurrency = "USD"
)

// AdoptionFee computes the fee in whole currency units: base 100, +50 for
// animals younger than a year, -30 for animals with flagged special needs.
func AdoptionFee(animal *repository.Animal) int {
	fee := baseFee
	if animal.AgeMonths < 12 {
		fee += youngAnimalSurcharge
	}
	if animal.SpecialNeeds {
		fee -= specialNeedsDiscount
	}
	if fee < 0 {
		fee = 0
	}
	return fee
}
