package orders

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/stitchdesk/backend/internal/domain/catalog"
	"github.com/stitchdesk/backend/internal/domain/measurement"
	"github.com/stitchdesk/backend/internal/domain/orders"
	"github.com/stitchdesk/backend/internal/domain/partner"
	"github.com/stitchdesk/backend/internal/domain/shared"
	"github.com/stitchdesk/backend/internal/domain/shared/valueobject"
)

// SubmissionStore persists a placed order together with the measurement
// records taken during composition in one transaction. Either everything
// commits or nothing does.
type SubmissionStore interface {
	SaveSubmission(ctx context.Context, order *orders.Order, records []*measurement.Record) error
}

// CompositionService mediates the order-building session: customer
// selection, outfit instances, measurement capture and final
// submission. Every mutation loads the caller's draft from the store,
// applies the change and saves it back; lookups or saves that fail
// leave the stored draft untouched so the caller can retry.
type CompositionService struct {
	drafts         orders.DraftStore
	customerRepo   partner.CustomerRepository
	outfitRepo     catalog.OutfitRepository
	fieldRepo      catalog.MeasurementFieldRepository
	recordRepo     measurement.RecordRepository
	orderRepo      orders.OrderRepository
	submissions    SubmissionStore
	eventPublisher shared.EventPublisher
}

// NewCompositionService creates a new CompositionService
func NewCompositionService(
	drafts orders.DraftStore,
	customerRepo partner.CustomerRepository,
	outfitRepo catalog.OutfitRepository,
	fieldRepo catalog.MeasurementFieldRepository,
	recordRepo measurement.RecordRepository,
	orderRepo orders.OrderRepository,
	submissions SubmissionStore,
) *CompositionService {
	return &CompositionService{
		drafts:       drafts,
		customerRepo: customerRepo,
		outfitRepo:   outfitRepo,
		fieldRepo:    fieldRepo,
		recordRepo:   recordRepo,
		orderRepo:    orderRepo,
		submissions:  submissions,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CompositionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetDraft returns the caller's current draft, creating an empty one if
// none exists
func (s *CompositionService) GetDraft(ctx context.Context, tenantID, userID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.loadDraft(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	response := ToDraftResponse(draft)
	return &response, nil
}

// SelectCustomer sets the draft's customer from the customer registry
func (s *CompositionService) SelectCustomer(ctx context.Context, tenantID, userID uuid.UUID, req SelectCustomerRequest) (*DraftResponse, error) {
	customer, err := s.customerRepo.FindByIDForTenant(ctx, tenantID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Customer is not active")
	}

	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		return draft.SelectCustomer(orders.CustomerRef{
			ID:       customer.ID,
			Name:     customer.Name,
			Mobile:   customer.Mobile,
			SiteCode: customer.SiteCode,
		})
	})
}

// ClearCustomer removes the draft's customer selection
func (s *CompositionService) ClearCustomer(ctx context.Context, tenantID, userID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		draft.ClearCustomer()
		return nil
	})
}

// AddInstance adds an occurrence of a catalog outfit to the draft
func (s *CompositionService) AddInstance(ctx context.Context, tenantID, userID uuid.UUID, req AddInstanceRequest) (*DraftResponse, error) {
	outfit, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, req.OutfitID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		_, err := draft.AddInstance(outfit)
		return err
	})
}

// RemoveInstance deletes an instance and all its state
func (s *CompositionService) RemoveInstance(ctx context.Context, tenantID, userID uuid.UUID, instanceID string) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		return draft.RemoveInstance(instanceID)
	})
}

// UpdateInstance applies partial edits to one instance. Switching the
// order type re-prices the instance from the catalog.
func (s *CompositionService) UpdateInstance(ctx context.Context, tenantID, userID uuid.UUID, instanceID string, req UpdateInstanceRequest) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		if req.OrderType != nil {
			instance, err := draft.Instance(instanceID)
			if err != nil {
				return err
			}
			outfit, err := s.outfitRepo.FindByIDForTenant(ctx, tenantID, instance.OutfitID)
			if err != nil {
				return err
			}
			if err := draft.SetOrderType(instanceID, orders.OrderType(*req.OrderType), outfit); err != nil {
				return err
			}
		}
		if req.Quantity != nil {
			if err := draft.SetQuantity(instanceID, *req.Quantity); err != nil {
				return err
			}
		}
		if req.UnitPrice != nil {
			if err := draft.SetUnitPrice(instanceID, valueobject.NewMoneyINR(*req.UnitPrice)); err != nil {
				return err
			}
		}
		if req.ReferenceName != nil {
			if err := draft.SetReferenceName(instanceID, *req.ReferenceName); err != nil {
				return err
			}
		}
		if req.SpecialInstructions != nil {
			if err := draft.SetSpecialInstructions(instanceID, *req.SpecialInstructions); err != nil {
				return err
			}
		}
		if req.InspirationLink != nil {
			if err := draft.SetInspirationLink(instanceID, *req.InspirationLink); err != nil {
				return err
			}
		}
		if req.IsPriority != nil {
			if err := draft.SetPriority(instanceID, *req.IsPriority); err != nil {
				return err
			}
		}
		if req.TrialDate != nil {
			date, err := orders.ParseSubmissionDate(*req.TrialDate)
			if err != nil {
				return shared.NewDomainError("INVALID_DATE", "Trial date is not in a recognized format")
			}
			if err := draft.SetTrialDate(instanceID, date); err != nil {
				return err
			}
		}
		if req.DeliveryDate != nil {
			date, err := orders.ParseSubmissionDate(*req.DeliveryDate)
			if err != nil {
				return shared.NewDomainError("INVALID_DATE", "Delivery date is not in a recognized format")
			}
			if err := draft.SetDeliveryDate(instanceID, date); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddCost appends an additional cost line to an instance
func (s *CompositionService) AddCost(ctx context.Context, tenantID, userID uuid.UUID, instanceID string, req AddCostRequest) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		return draft.AddAdditionalCost(instanceID, req.Description, valueobject.NewMoneyINR(req.Amount))
	})
}

// RemoveCost removes the cost line at the given position
func (s *CompositionService) RemoveCost(ctx context.Context, tenantID, userID uuid.UUID, instanceID string, index int) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		return draft.RemoveAdditionalCost(instanceID, index)
	})
}

// AddAttachment records an uploaded image against an instance
func (s *CompositionService) AddAttachment(ctx context.Context, tenantID, userID uuid.UUID, instanceID string, req AddAttachmentRequest) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		return draft.AddAttachment(instanceID, req.Key, req.FileName)
	})
}

// RemoveAttachment removes the attachment at the given position
func (s *CompositionService) RemoveAttachment(ctx context.Context, tenantID, userID uuid.UUID, instanceID string, index int) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		return draft.RemoveAttachment(instanceID, index)
	})
}

// SetStitchOption records one style choice on an instance
func (s *CompositionService) SetStitchOption(ctx context.Context, tenantID, userID uuid.UUID, instanceID string, req SetStitchOptionRequest) (*DraftResponse, error) {
	return s.mutate(ctx, tenantID, userID, func(draft *orders.OrderDraft) error {
		return draft.SetStitchOption(instanceID, req.Name, req.Value)
	})
}

// OpenMeasurements builds the measurement capture form for an instance.
// The customer's last recorded values seed fields the instance has no
// value for; in-session edits always win over the fetched defaults.
func (s *CompositionService) OpenMeasurements(ctx context.Context, tenantID, userID uuid.UUID, instanceID string) (*MeasurementFormResponse, error) {
	draft, err := s.loadDraft(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	instance, err := draft.Instance(instanceID)
	if err != nil {
		return nil, err
	}

	fields, err := s.fieldRepo.FindByOutfit(ctx, tenantID, instance.OutfitID)
	if err != nil {
		return nil, err
	}

	defaults := make(map[string]string)
	if draft.Customer != nil {
		record, err := s.recordRepo.FindLatest(ctx, tenantID, draft.Customer.ID, instance.OutfitID)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if record != nil {
			byField := record.ValuesByField()
			for _, field := range fields {
				if value, ok := byField[field.ID]; ok {
					defaults[field.Name] = value
				}
			}
		}
	}

	values, err := draft.SeedMeasurements(instanceID, defaults)
	if err != nil {
		return nil, err
	}

	form := &MeasurementFormResponse{
		InstanceID: instanceID,
		Fields:     make([]MeasurementFormField, 0, len(fields)),
	}
	for _, field := range fields {
		form.Fields = append(form.Fields, MeasurementFormField{
			FieldID:  field.ID,
			Name:     field.Name,
			DataType: string(field.DataType),
			Seq:      field.Seq,
			Value:    values[field.Name],
		})
	}
	return form, nil
}

// SaveMeasurements commits the capture form into the instance. Values
// for numeric fields must parse as numbers.
func (s *CompositionService) SaveMeasurements(ctx context.Context, tenantID, userID uuid.UUID, instanceID string, req SaveMeasurementsRequest) (*DraftResponse, error) {
	draft, err := s.loadDraft(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	instance, err := draft.Instance(instanceID)
	if err != nil {
		return nil, err
	}

	fields, err := s.fieldRepo.FindByOutfit(ctx, tenantID, instance.OutfitID)
	if err != nil {
		return nil, err
	}
	for _, field := range fields {
		value, ok := req.Values[field.Name]
		if !ok || value == "" {
			continue
		}
		if field.DataType == catalog.FieldTypeNumber {
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				return nil, shared.NewDomainError("INVALID_MEASUREMENT",
					"Measurement "+field.Name+" must be numeric")
			}
		}
	}

	if err := draft.SaveMeasurements(instanceID, req.Values); err != nil {
		return nil, err
	}
	if err := s.drafts.Put(ctx, draft); err != nil {
		return nil, err
	}
	response := ToDraftResponse(draft)
	return &response, nil
}

// Submit turns the draft into a placed order. The order and all
// measurement records commit in one transaction; on any failure the
// draft is left intact for correction and resubmission. On success the
// draft is discarded and a fresh session begins.
func (s *CompositionService) Submit(ctx context.Context, tenantID, userID uuid.UUID) (*OrderResponse, error) {
	draft, err := s.loadDraft(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	fieldsByOutfit := make(map[uuid.UUID][]catalog.MeasurementField)
	outfitNames := make(map[uuid.UUID]string)
	for idx := range draft.Instances {
		instance := &draft.Instances[idx]
		outfitNames[instance.OutfitID] = instance.OutfitName
		if _, ok := fieldsByOutfit[instance.OutfitID]; ok {
			continue
		}
		fields, err := s.fieldRepo.FindByOutfit(ctx, tenantID, instance.OutfitID)
		if err != nil {
			return nil, err
		}
		fieldsByOutfit[instance.OutfitID] = fields
	}

	now := time.Now()
	submission, err := draft.BuildSubmission(fieldsByOutfit, now)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.NextOrderNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	order, err := orders.NewOrder(tenantID, orderNumber, submission.CustomerID, draft.Customer.Name, now)
	if err != nil {
		return nil, err
	}

	records := make([]*measurement.Record, 0, len(draft.Instances))
	for idx, detail := range submission.Details {
		instance := &draft.Instances[idx]

		var recordID *uuid.UUID
		if detail.MeasurementRecord != nil {
			record, err := measurement.NewRecord(tenantID, submission.CustomerID, instance.OutfitID,
				fieldsByOutfit[instance.OutfitID], instance.Measurements)
			if err != nil {
				return nil, err
			}
			records = append(records, record)
			recordID = &record.ID
		}

		if err := order.AddDetail(detail, recordID, outfitNames[detail.OutfitID]); err != nil {
			return nil, err
		}
	}

	if err := order.Place(); err != nil {
		return nil, err
	}

	// Atomic commit of the whole multi-instance payload
	if err := s.submissions.SaveSubmission(ctx, order, records); err != nil {
		return nil, err
	}

	// The session resets only after the order is durably placed. A
	// failed delete leaves a stale draft behind but the order exists,
	// so it is not treated as a submission failure.
	_ = s.drafts.Delete(ctx, tenantID, userID)

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, order.GetDomainEvents()...); err == nil {
			order.ClearDomainEvents()
		}
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// mutate loads the caller's draft, applies fn and saves the result
func (s *CompositionService) mutate(ctx context.Context, tenantID, userID uuid.UUID, fn func(*orders.OrderDraft) error) (*DraftResponse, error) {
	draft, err := s.loadDraft(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.drafts.Put(ctx, draft); err != nil {
		return nil, err
	}
	response := ToDraftResponse(draft)
	return &response, nil
}

func (s *CompositionService) loadDraft(ctx context.Context, tenantID, userID uuid.UUID) (*orders.OrderDraft, error) {
	draft, err := s.drafts.Get(ctx, tenantID, userID)
	if err == shared.ErrNotFound {
		return orders.NewOrderDraft(tenantID, userID), nil
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}
