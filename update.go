package stockroom

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// DefaultUpdateNote is recorded when a full update changes the quantity without a note.
const DefaultUpdateNote = "Manual update"

// Update holds the new values of a full item update.
type Update struct {
	Quantity     int
	Price        Price
	LowThreshold int
}

var errNegative = errors.New("must not be negative")

// ParseUpdate parses user input for a full update: an integer quantity, a
// decimal price and an integer low-stock threshold.
//
// It returns a *ValidationError on the first field that cannot be accepted.
// Quantity and price must not be negative.
func ParseUpdate(quantity, price, lowThreshold string) (Update, error) {
	var u Update
	q, err := strconv.Atoi(strings.TrimSpace(quantity))
	if err != nil {
		return Update{}, &ValidationError{Field: "quantity", Value: quantity, Err: err}
	}
	if q < 0 {
		return Update{}, &ValidationError{Field: "quantity", Value: quantity, Err: errNegative}
	}
	u.Quantity = q

	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return Update{}, &ValidationError{Field: "price", Value: price, Err: err}
	}
	if d.IsNegative() {
		return Update{}, &ValidationError{Field: "price", Value: price, Err: errNegative}
	}
	u.Price = P(d)

	low, err := strconv.Atoi(strings.TrimSpace(lowThreshold))
	if err != nil {
		return Update{}, &ValidationError{Field: "low_threshold", Value: lowThreshold, Err: err}
	}
	u.LowThreshold = low
	return u, nil
}

// ApplyUpdate replaces the quantity, price and threshold of the named item.
//
// When the quantity changes an event is recorded with note, or
// DefaultUpdateNote if note is blank.
func (inv *Inventory) ApplyUpdate(name string, u Update, note string) error {
	it, err := inv.lookup(name)
	if err != nil {
		return err
	}
	if u.Quantity < 0 {
		return &ValidationError{Field: "quantity", Value: strconv.Itoa(u.Quantity), Err: errNegative}
	}
	if u.Price.IsNegative() {
		return &ValidationError{Field: "price", Value: u.Price.String(), Err: errNegative}
	}
	delta := u.Quantity - it.Quantity
	it.Quantity = u.Quantity
	it.Price = u.Price
	it.LowThreshold = u.LowThreshold
	if delta != 0 {
		if note = strings.TrimSpace(note); note == "" {
			note = DefaultUpdateNote
		}
		it.History.Append(Event{Timestamp: inv.now(), Delta: delta, NewQuantity: u.Quantity, Note: note})
	}
	inv.log().WithFields(logrus.Fields{"item": name, "delta": delta, "quantity": u.Quantity, "price": u.Price.String()}).Info("item updated")
	return nil
}
