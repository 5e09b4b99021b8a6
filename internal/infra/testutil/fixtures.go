package testutil

import (
	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// FakeUser builds a user with a random name and email and the given balance.
func FakeUser(balance int64) *entity.User {
	user, err := entity.NewUser(gofakeit.Name(), decimal.NewFromInt(balance))
	if err != nil {
		panic(err)
	}
	user.Email = gofakeit.Email()
	return user
}

// FakeStoreName returns a random store name.
func FakeStoreName() string {
	return gofakeit.Company() + " " + gofakeit.LetterN(6)
}

// FakeItemName returns a random product name.
func FakeItemName() string {
	return gofakeit.ProductName()
}
