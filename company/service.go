package company

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/nyaruka/phonenumbers"

	auth "github.com/goliatone/go-auth-api"
)

// DefaultPhoneRegion is used to parse phone numbers without a country prefix
const DefaultPhoneRegion = "ES"

// CreateTypeMessage is the input of TypeService.Create
type CreateTypeMessage struct {
	Type string `json:"type"`
}

func (m CreateTypeMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Type, validation.Required, validation.Length(1, 200)),
	)
}

// TypeService manages company types
type TypeService struct {
	store    Store[*CompanyType]
	activity *auth.ActivityEmitter
}

func NewTypeService(store Store[*CompanyType], activity *auth.ActivityEmitter) *TypeService {
	return &TypeService{store: store, activity: activity}
}

func (s *TypeService) Create(ctx context.Context, msg CreateTypeMessage) (*CompanyType, error) {
	msg.Type = strings.TrimSpace(msg.Type)
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompanyTypeInputValidation, err)
	}

	record, err := s.store.Create(ctx, &CompanyType{Type: msg.Type})
	if err != nil {
		return nil, err
	}

	s.activity.Emit(ctx, auth.ActivityEvent{
		EventType: auth.ActivityEventResource,
		Message:   fmt.Sprintf("CompanyType %s created", record.Type),
		UserID:    actorID(ctx),
	})

	return record, nil
}

func (s *TypeService) FindAll(ctx context.Context) ([]*CompanyType, error) {
	return s.store.FindAll(ctx)
}

// FindByID returns (nil, nil) when the id is valid but unknown
func (s *TypeService) FindByID(ctx context.Context, id int64) (*CompanyType, error) {
	if id <= 0 {
		return nil, ErrInvalidCompanyTypeID
	}
	return s.store.FindByID(ctx, id)
}

// CreateCompanyMessage is the input of Service.Create. Active defaults
// to true and Admin to false when omitted.
type CreateCompanyMessage struct {
	CompanyTypeID int64  `json:"company_typeId"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	CIF           string `json:"cif"`
	Active        *bool  `json:"active"`
	Admin         *bool  `json:"admin"`
}

func (m CreateCompanyMessage) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.CompanyTypeID, validation.Required, validation.Min(int64(1))),
		validation.Field(&m.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&m.Address, validation.Length(0, 500)),
		validation.Field(&m.CIF, validation.Length(0, 20)),
	)
}

// Service manages companies
type Service struct {
	store       Store[*Company]
	types       Store[*CompanyType]
	phoneRegion string
	activity    *auth.ActivityEmitter
}

func NewService(store Store[*Company], types Store[*CompanyType], activity *auth.ActivityEmitter) *Service {
	return &Service{
		store:       store,
		types:       types,
		phoneRegion: DefaultPhoneRegion,
		activity:    activity,
	}
}

// WithPhoneRegion sets the region used to parse local phone numbers
func (s *Service) WithPhoneRegion(region string) *Service {
	if region = strings.ToUpper(strings.TrimSpace(region)); region != "" {
		s.phoneRegion = region
	}
	return s
}

func (s *Service) Create(ctx context.Context, msg CreateCompanyMessage) (*Company, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompanyInputValidation, err)
	}

	phone, err := s.normalizePhone(msg.Phone)
	if err != nil {
		return nil, fmt.Errorf("%w: phone: %w", ErrCompanyInputValidation, err)
	}

	companyType, err := s.types.FindByID(ctx, msg.CompanyTypeID)
	if err != nil {
		return nil, err
	}
	if companyType == nil {
		return nil, fmt.Errorf("%w: company_typeId: %w", ErrCompanyInputValidation, ErrCompanyTypeNotFound)
	}

	record := &Company{
		CompanyTypeID: msg.CompanyTypeID,
		Name:          msg.Name,
		Address:       strings.TrimSpace(msg.Address),
		Phone:         phone,
		CIF:           strings.ToUpper(strings.TrimSpace(msg.CIF)),
		Active:        true,
	}
	if msg.Active != nil {
		record.Active = *msg.Active
	}
	if msg.Admin != nil {
		record.Admin = *msg.Admin
	}

	record, err = s.store.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.activity.Emit(ctx, auth.ActivityEvent{
		EventType: auth.ActivityEventResource,
		Message:   fmt.Sprintf("Company %s created", record.Name),
		UserID:    actorID(ctx),
	})

	return record, nil
}

func (s *Service) FindAll(ctx context.Context) ([]*Company, error) {
	return s.store.FindAll(ctx)
}

// FindByID returns (nil, nil) when the id is valid but unknown
func (s *Service) FindByID(ctx context.Context, id int64) (*Company, error) {
	if id <= 0 {
		return nil, ErrInvalidCompanyID
	}
	return s.store.FindByID(ctx, id)
}

// normalizePhone returns the E164 form of raw, empty input is allowed
func (s *Service) normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	num, err := phonenumbers.Parse(raw, s.phoneRegion)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid number for region %s", s.phoneRegion)
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

func actorID(ctx context.Context) string {
	if identity, ok := auth.IdentityFromContext(ctx); ok {
		return identity.ID
	}
	return ""
}
