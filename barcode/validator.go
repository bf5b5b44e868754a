// Package barcode validates product code numbers against the check
// digit rule of their barcode type.
package barcode

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrInvalidNumber is returned when a number fails the check digit
	// rule of its barcode type.
	ErrInvalidNumber = errors.New("invalid barcode number")
	// ErrUnsupportedType is returned for a tag outside the registry.
	ErrUnsupportedType = errors.New("unsupported barcode type")
)

// Outcome describes how a number passed or failed validation.
type Outcome string

const (
	OutcomeSkipped  Outcome = "skipped"
	OutcomeValid    Outcome = "valid"
	OutcomeRepaired Outcome = "repaired"
	OutcomeInvalid  Outcome = "invalid"
)

// Recorder receives one call per validation.
type Recorder interface {
	ObserveValidation(barcodeType string, outcome Outcome)
}

type Validator struct {
	registry *Registry
	recorder Recorder
	log      *zap.Logger
}

// NewValidator returns a validator backed by registry. A nil registry
// means no checksum library is available and every number is accepted.
func NewValidator(registry *Registry, recorder Recorder, log *zap.Logger) *Validator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Validator{registry: registry, recorder: recorder, log: log}
}

// Enabled reports whether numbers are checked at all.
func (v *Validator) Enabled() bool {
	return v != nil && v.registry != nil
}

// Types lists the barcode types numbers can be validated for.
func (v *Validator) Types() []string {
	if !v.Enabled() {
		return []string{}
	}
	return v.registry.Types()
}

// Validate checks number against the rule of barcodeType and returns
// the number to store. A nil validator accepts every number. When the number only validates after removing a
// leading copy of the type tag, the stripped number is returned.
func (v *Validator) Validate(barcodeType, number string) (string, error) {
	if v == nil {
		return number, nil
	}
	barcodeType = strings.ToUpper(strings.TrimSpace(barcodeType))
	if v.registry == nil || barcodeType == "" {
		v.observe(barcodeType, OutcomeSkipped)
		return number, nil
	}

	check, ok := v.registry.Lookup(barcodeType)
	if !ok {
		v.log.Warn("Unsupported barcode type", zap.String("barcode", barcodeType))
		return number, ErrUnsupportedType
	}

	if check(number) {
		v.observe(barcodeType, OutcomeValid)
		return number, nil
	}

	// Users sometimes type the tag in front of the number, e.g. "EAN13 4006381333931".
	if len(number) > len(barcodeType) && strings.EqualFold(number[:len(barcodeType)], barcodeType) {
		stripped := strings.TrimSpace(number[len(barcodeType):])
		if check(stripped) {
			v.log.Debug("Stripped barcode type from number",
				zap.String("barcode", barcodeType),
				zap.String("number", number),
				zap.String("stripped", stripped))
			v.observe(barcodeType, OutcomeRepaired)
			return stripped, nil
		}
	}

	v.log.Warn("Invalid barcode number",
		zap.String("barcode", barcodeType),
		zap.String("number", number))
	v.observe(barcodeType, OutcomeInvalid)
	return number, ErrInvalidNumber
}

// observe labels outcomes with registered tags only, so free-form tags
// never become label values.
func (v *Validator) observe(barcodeType string, outcome Outcome) {
	if v.recorder == nil {
		return
	}
	label := barcodeType
	switch {
	case barcodeType == "":
		label = "none"
	case v.registry == nil:
		label = "unchecked"
	default:
		if _, ok := v.registry.Lookup(barcodeType); !ok {
			label = "unchecked"
		}
	}
	v.recorder.ObserveValidation(label, outcome)
}
