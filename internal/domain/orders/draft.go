package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

// CustomerRef is the draft's snapshot of the selected customer.
// Instances keep reference names derived from it even if the selection
// is later cleared or replaced.
type CustomerRef struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Mobile   string    `json:"mobile"`
	SiteCode string    `json:"site_code"`
}

// FirstName returns the first whitespace-separated token of the name
func (c CustomerRef) FirstName() string {
	fields := strings.Fields(c.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// AdditionalCost is an extra line charge on one outfit instance
type AdditionalCost struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// Attachment references an uploaded inspiration or reference image
type Attachment struct {
	Key      string `json:"key"`
	FileName string `json:"file_name"`
}

// OutfitInstance is one occurrence of a catalog outfit within a draft.
// The same catalog outfit may be added more than once; each occurrence
// has its own identity, pricing, dates, measurements and options.
type OutfitInstance struct {
	InstanceID          string            `json:"instance_id"`
	OutfitID            uuid.UUID         `json:"outfit_id"`
	OutfitName          string            `json:"outfit_name"`
	ReferenceName       string            `json:"reference_name"`
	OrderType           OrderType         `json:"order_type"`
	Quantity            int               `json:"quantity"`
	UnitPrice           decimal.Decimal   `json:"unit_price"`
	AdditionalCosts     []AdditionalCost  `json:"additional_costs"`
	SpecialInstructions string            `json:"special_instructions"`
	InspirationLink     string            `json:"inspiration_link"`
	Attachments         []Attachment      `json:"attachments"`
	TrialDate           *time.Time        `json:"trial_date"`
	DeliveryDate        *time.Time        `json:"delivery_date"`
	IsPriority          bool              `json:"is_priority"`
	Measurements        map[string]string `json:"measurements"`
	StitchOptions       map[string]string `json:"stitch_options"`
	Total               decimal.Decimal   `json:"total"`
}

// recalculateTotal recomputes the instance total.
// Total = quantity * unitPrice + sum of additional costs.
func (i *OutfitInstance) recalculateTotal() {
	total := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	for _, cost := range i.AdditionalCosts {
		total = total.Add(cost.Amount)
	}
	i.Total = total
}

// HasMeasurements reports whether measurements were saved for this
// instance. Drives the add-vs-edit labeling on clients.
func (i *OutfitInstance) HasMeasurements() bool {
	return len(i.Measurements) > 0
}

// GetTotalMoney returns the instance total as Money
func (i *OutfitInstance) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.Total)
}

// OrderDraft is the in-progress order-composition session for one user.
// It owns the selected customer, the set of outfit instances and the
// running totals, and assembles the final submission. A draft is
// ephemeral: it lives in the draft store until submitted or abandoned.
type OrderDraft struct {
	TenantID  uuid.UUID         `json:"tenant_id"`
	UserID    uuid.UUID         `json:"user_id"`
	Customer  *CustomerRef      `json:"customer"`
	Instances []OutfitInstance  `json:"instances"`
	Counters  map[uuid.UUID]int `json:"counters"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewOrderDraft creates an empty draft for a user session
func NewOrderDraft(tenantID, userID uuid.UUID) *OrderDraft {
	return &OrderDraft{
		TenantID:  tenantID,
		UserID:    userID,
		Instances: make([]OutfitInstance, 0),
		Counters:  make(map[uuid.UUID]int),
		UpdatedAt: time.Now(),
	}
}

// SelectCustomer sets the draft's customer, replacing any prior
// selection. Existing instances keep their reference names.
func (d *OrderDraft) SelectCustomer(customer CustomerRef) error {
	if customer.ID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	d.Customer = &customer
	d.touch()
	return nil
}

// ClearCustomer removes the customer selection. Instances and their
// customer-derived reference names are untouched.
func (d *OrderDraft) ClearCustomer() {
	d.Customer = nil
	d.touch()
}

// AddInstance adds a new occurrence of a catalog outfit to the draft.
// Identity is the catalog outfit ID plus a per-outfit sequence that
// only ever increases, so removed identities are never reused within
// the session. Defaults: stitching type at the outfit's stitching
// price, quantity 1, reference name from the selected customer.
func (d *OrderDraft) AddInstance(outfit *catalog.Outfit) (*OutfitInstance, error) {
	if outfit == nil {
		return nil, shared.NewDomainError("INVALID_OUTFIT", "Outfit cannot be empty")
	}
	if !outfit.Active {
		return nil, shared.NewDomainError("OUTFIT_INACTIVE", "Outfit is not available for ordering")
	}

	if d.Counters == nil {
		d.Counters = make(map[uuid.UUID]int)
	}
	seq := d.Counters[outfit.ID]
	d.Counters[outfit.ID] = seq + 1

	referenceName := ""
	if d.Customer != nil {
		referenceName = d.Customer.FirstName()
	}

	instance := OutfitInstance{
		InstanceID:      fmt.Sprintf("%s-%d", outfit.ID, seq),
		OutfitID:        outfit.ID,
		OutfitName:      outfit.Name,
		ReferenceName:   referenceName,
		OrderType:       OrderTypeStitching,
		Quantity:        1,
		UnitPrice:       outfit.StitchingPrice,
		AdditionalCosts: make([]AdditionalCost, 0),
		Attachments:     make([]Attachment, 0),
		Measurements:    make(map[string]string),
		StitchOptions:   make(map[string]string),
	}
	instance.recalculateTotal()

	d.Instances = append(d.Instances, instance)
	d.touch()

	return &d.Instances[len(d.Instances)-1], nil
}

// RemoveInstance deletes an instance and all its per-instance state.
// Other instances keep their identities and totals.
func (d *OrderDraft) RemoveInstance(instanceID string) error {
	for idx, instance := range d.Instances {
		if instance.InstanceID == instanceID {
			d.Instances = append(d.Instances[:idx], d.Instances[idx+1:]...)
			d.touch()
			return nil
		}
	}
	return shared.ErrInstanceNotFound
}

// Instance returns an instance by its ID
func (d *OrderDraft) Instance(instanceID string) (*OutfitInstance, error) {
	for idx := range d.Instances {
		if d.Instances[idx].InstanceID == instanceID {
			return &d.Instances[idx], nil
		}
	}
	return nil, shared.ErrInstanceNotFound
}

// SetOrderType switches an instance between stitching and alteration.
// The unit price resets to the outfit's price for the new type;
// quantity and additional costs are untouched.
func (d *OrderDraft) SetOrderType(instanceID string, orderType OrderType, outfit *catalog.Outfit) error {
	if !orderType.IsValid() {
		return shared.NewDomainError("INVALID_ORDER_TYPE", "Order type must be stitching or alteration")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	if outfit == nil || outfit.ID != instance.OutfitID {
		return shared.NewDomainError("OUTFIT_MISMATCH", "Outfit does not match the instance")
	}

	price, err := outfit.PriceFor(orderType.String())
	if err != nil {
		return err
	}

	instance.OrderType = orderType
	instance.UnitPrice = price
	instance.recalculateTotal()
	d.touch()
	return nil
}

// SetQuantity updates an instance's quantity and recomputes its total
func (d *OrderDraft) SetQuantity(instanceID string, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.Quantity = quantity
	instance.recalculateTotal()
	d.touch()
	return nil
}

// SetUnitPrice overrides an instance's unit price and recomputes its total
func (d *OrderDraft) SetUnitPrice(instanceID string, unitPrice valueobject.Money) error {
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.UnitPrice = unitPrice.Amount()
	instance.recalculateTotal()
	d.touch()
	return nil
}

// AddAdditionalCost appends an extra charge to an instance
func (d *OrderDraft) AddAdditionalCost(instanceID, description string, amount valueobject.Money) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return shared.NewDomainError("INVALID_COST", "Cost description cannot be empty")
	}
	if amount.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost amount cannot be negative")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.AdditionalCosts = append(instance.AdditionalCosts, AdditionalCost{
		Description: description,
		Amount:      amount.Amount(),
	})
	instance.recalculateTotal()
	d.touch()
	return nil
}

// RemoveAdditionalCost removes the cost at the given position
func (d *OrderDraft) RemoveAdditionalCost(instanceID string, index int) error {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(instance.AdditionalCosts) {
		return shared.NewDomainError("INVALID_COST", "No additional cost at that position")
	}
	instance.AdditionalCosts = append(instance.AdditionalCosts[:index], instance.AdditionalCosts[index+1:]...)
	instance.recalculateTotal()
	d.touch()
	return nil
}

// SetReferenceName updates the instance's editable label
func (d *OrderDraft) SetReferenceName(instanceID, name string) error {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.ReferenceName = strings.TrimSpace(name)
	d.touch()
	return nil
}

// SetSpecialInstructions updates the instance's free-text instructions
func (d *OrderDraft) SetSpecialInstructions(instanceID, instructions string) error {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.SpecialInstructions = instructions
	d.touch()
	return nil
}

// SetInspirationLink updates the instance's inspiration URL
func (d *OrderDraft) SetInspirationLink(instanceID, link string) error {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.InspirationLink = strings.TrimSpace(link)
	d.touch()
	return nil
}

// SetPriority flags or unflags an instance as priority work
func (d *OrderDraft) SetPriority(instanceID string, priority bool) error {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.IsPriority = priority
	d.touch()
	return nil
}

// SetTrialDate sets or clears the instance's trial date.
// Dates in the past are rejected.
func (d *OrderDraft) SetTrialDate(instanceID string, date *time.Time) error {
	if date != nil && beforeToday(*date) {
		return shared.NewDomainError("INVALID_DATE", "Trial date cannot be in the past")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.TrialDate = date
	d.touch()
	return nil
}

// SetDeliveryDate sets or clears the instance's delivery date.
// Dates in the past are rejected.
func (d *OrderDraft) SetDeliveryDate(instanceID string, date *time.Time) error {
	if date != nil && beforeToday(*date) {
		return shared.NewDomainError("INVALID_DATE", "Delivery date cannot be in the past")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.DeliveryDate = date
	d.touch()
	return nil
}

// SetStitchOption records one named style choice (collar, sleeve,
// pocket and so on). An empty value clears the choice.
func (d *OrderDraft) SetStitchOption(instanceID, name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_OPTION", "Option name cannot be empty")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	if instance.StitchOptions == nil {
		instance.StitchOptions = make(map[string]string)
	}
	if value == "" {
		delete(instance.StitchOptions, name)
	} else {
		instance.StitchOptions[name] = value
	}
	d.touch()
	return nil
}

// AddAttachment appends an uploaded image reference to an instance
func (d *OrderDraft) AddAttachment(instanceID, key, fileName string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_ATTACHMENT", "Attachment key cannot be empty")
	}
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	instance.Attachments = append(instance.Attachments, Attachment{Key: key, FileName: fileName})
	d.touch()
	return nil
}

// RemoveAttachment removes the attachment at the given position
func (d *OrderDraft) RemoveAttachment(instanceID string, index int) error {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(instance.Attachments) {
		return shared.NewDomainError("INVALID_ATTACHMENT", "No attachment at that position")
	}
	instance.Attachments = append(instance.Attachments[:index], instance.Attachments[index+1:]...)
	d.touch()
	return nil
}

// SeedMeasurements builds the working measurement form for an instance.
// Fetched defaults (the customer's last recorded values) fill fields the
// instance has no value for yet; in-session values win over defaults so
// a refetch never clobbers an edit.
func (d *OrderDraft) SeedMeasurements(instanceID string, defaults map[string]string) (map[string]string, error) {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return nil, err
	}
	form := make(map[string]string, len(defaults)+len(instance.Measurements))
	for name, value := range defaults {
		form[name] = value
	}
	for name, value := range instance.Measurements {
		form[name] = value
	}
	return form, nil
}

// SaveMeasurements commits the working form into the instance.
// Blank values are dropped so cleared fields fall back to defaults on
// the next seed.
func (d *OrderDraft) SaveMeasurements(instanceID string, values map[string]string) error {
	instance, err := d.Instance(instanceID)
	if err != nil {
		return err
	}
	saved := make(map[string]string, len(values))
	for name, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		saved[name] = value
	}
	instance.Measurements = saved
	d.touch()
	return nil
}

// GrandTotal is the sum of all instance totals
func (d *OrderDraft) GrandTotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range d.Instances {
		total = total.Add(d.Instances[idx].Total)
	}
	return total
}

// GetGrandTotalMoney returns the grand total as Money
func (d *OrderDraft) GetGrandTotalMoney() valueobject.Money {
	return valueobject.NewMoneyINR(d.GrandTotal())
}

// InstanceCount returns the number of instances in the draft
func (d *OrderDraft) InstanceCount() int {
	return len(d.Instances)
}

// Validate checks the submission preconditions: a customer must be
// selected and at least one instance must exist
func (d *OrderDraft) Validate() error {
	if d.Customer == nil {
		return shared.ErrNoCustomer
	}
	if len(d.Instances) == 0 {
		return shared.ErrNoInstances
	}
	return nil
}

// Reset clears all working state after a successful submission,
// leaving the draft ready for a new order
func (d *OrderDraft) Reset() {
	d.Customer = nil
	d.Instances = make([]OutfitInstance, 0)
	d.Counters = make(map[uuid.UUID]int)
	d.touch()
}

func (d *OrderDraft) touch() {
	d.UpdatedAt = time.Now()
}

func beforeToday(t time.Time) bool {
	now := time.Now()
	y, m, day := t.Date()
	ny, nm, nd := now.Date()
	date := time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.Local)
	return date.Before(today)
}
