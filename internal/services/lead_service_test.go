package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glowdesk/crm-api/internal/enrichment"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/models"
)

type stubFetcher struct {
	profile *enrichment.Profile
	err     error
	calls   int
}

func (f *stubFetcher) Fetch(ctx context.Context, url string) (*enrichment.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newLeadFixture(tr *testRepos, status models.LeadStatus) *models.Lead {
	lead := &models.Lead{
		OutletName:     "Luxe Hair Studio",
		ContactName:    "Jane van der Berg",
		ContactEmail:   "jane@luxehair.example",
		ContactPhone:   "+15551234567",
		Website:        "luxehair.example",
		Source:         "Referral",
		Platform:       "salon",
		LeadQuality:    models.LeadQualityHot,
		Status:         status,
		EstimatedValue: 60000,
	}
	if err := tr.lead.Create(lead); err != nil {
		panic(err)
	}
	return lead
}

func TestConvertLeadToAccount(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := newLeadFixture(tr, models.LeadStatusQualified)

	result, err := svc.ConvertToAccount(lead.ID.String())
	if err != nil {
		t.Fatalf("ConvertToAccount() error = %v", err)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings for qualified lead: %v", result.Warnings)
	}
	if tr.account.creates != 1 {
		t.Errorf("account creates = %d, want 1", tr.account.creates)
	}
	if result.ContactID == nil {
		t.Fatal("expected a contact to be created")
	}

	var contact *models.Contact
	for _, c := range tr.contact.contacts {
		contact = c
	}
	if contact.FirstName != "Jane" || contact.LastName != "van der Berg" {
		t.Errorf("contact name split = %q / %q, want Jane / van der Berg",
			contact.FirstName, contact.LastName)
	}

	updated, _ := tr.lead.GetByID(lead.ID)
	if !updated.Converted || updated.Status != models.LeadStatusConverted {
		t.Errorf("lead not marked converted: converted=%v status=%s", updated.Converted, updated.Status)
	}
	if updated.ConvertedTo == nil || updated.ConvertedTo.String() != result.AccountID {
		t.Error("lead converted_to does not reference the new account")
	}

	account, _ := tr.account.GetByID(*updated.ConvertedTo)
	if account.AccountType != models.AccountTypeSalon {
		t.Errorf("account type = %s, want Salon from platform", account.AccountType)
	}
	if account.AccountTier != models.AccountTierBronze {
		t.Errorf("account tier = %s, want Bronze", account.AccountTier)
	}
}

func TestConvertLeadTwiceFails(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := newLeadFixture(tr, models.LeadStatusQualified)

	if _, err := svc.ConvertToAccount(lead.ID.String()); err != nil {
		t.Fatalf("first conversion failed: %v", err)
	}

	_, err := svc.ConvertToAccount(lead.ID.String())
	if apperrors.CodeOf(err) != apperrors.ErrCodeAlreadyConverted {
		t.Fatalf("second conversion error code = %s, want ALREADY_CONVERTED", apperrors.CodeOf(err))
	}
	if tr.account.creates != 1 {
		t.Errorf("account creates = %d after double conversion, want 1", tr.account.creates)
	}
}

func TestConvertUnqualifiedLeadWarns(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := newLeadFixture(tr, models.LeadStatusNew)

	result, err := svc.ConvertToAccount(lead.ID.String())
	if err != nil {
		t.Fatalf("ConvertToAccount() error = %v", err)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one status warning", result.Warnings)
	}
	if tr.account.creates != 1 {
		t.Errorf("conversion should still create the account, creates = %d", tr.account.creates)
	}
}

func TestConvertLeadWithoutContactSkipsContact(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := &models.Lead{
		OutletName:  "Walk-in Barbers",
		LeadQuality: models.LeadQualityWarm,
		Status:      models.LeadStatusQualified,
	}
	tr.lead.Create(lead)

	result, err := svc.ConvertToAccount(lead.ID.String())
	if err != nil {
		t.Fatalf("ConvertToAccount() error = %v", err)
	}
	if result.ContactID != nil {
		t.Error("expected no contact for a lead without contact details")
	}
	if tr.contact.creates != 0 {
		t.Errorf("contact creates = %d, want 0", tr.contact.creates)
	}
}

func TestQualifyLead(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := newLeadFixture(tr, models.LeadStatusNew)

	qualified, err := svc.Qualify(lead.ID.String())
	if err != nil {
		t.Fatalf("Qualify() error = %v", err)
	}
	if qualified.Status != models.LeadStatusQualified {
		t.Errorf("status = %s, want Qualified", qualified.Status)
	}
	// Hot +30, >50k +10, referral +15, qualified +20, full contact +15
	if qualified.AIScore != 100 {
		t.Errorf("AIScore = %d, want 100 after qualification", qualified.AIScore)
	}
}

func TestQualifyAlreadyQualified(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := newLeadFixture(tr, models.LeadStatusQualified)

	_, err := svc.Qualify(lead.ID.String())
	if apperrors.CodeOf(err) != apperrors.ErrCodeAlreadyQualified {
		t.Errorf("error code = %s, want ALREADY_QUALIFIED", apperrors.CodeOf(err))
	}
}

func TestQualifyConvertedLead(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := newLeadFixture(tr, models.LeadStatusQualified)
	if _, err := svc.ConvertToAccount(lead.ID.String()); err != nil {
		t.Fatalf("conversion failed: %v", err)
	}

	_, err := svc.Qualify(lead.ID.String())
	if apperrors.CodeOf(err) != apperrors.ErrCodeInvalidTransition {
		t.Errorf("error code = %s, want INVALID_TRANSITION", apperrors.CodeOf(err))
	}
}

func TestEnrichFillsMissingFields(t *testing.T) {
	tr := newTestRepos()
	fetcher := &stubFetcher{profile: &enrichment.Profile{
		Email: "front@luxehair.example",
		Phone: "+15559876543",
	}}
	svc := newLeadService(tr.repos, fetcher, noopLogger{})

	lead := &models.Lead{
		OutletName:   "Luxe Hair Studio",
		ContactEmail: "jane@luxehair.example",
		Website:      "luxehair.example",
		LeadQuality:  models.LeadQualityWarm,
		Status:       models.LeadStatusNew,
	}
	tr.lead.Create(lead)

	enriched, err := svc.Enrich(context.Background(), lead.ID.String())
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if enriched.ContactEmail != "jane@luxehair.example" {
		t.Errorf("existing email overwritten: %s", enriched.ContactEmail)
	}
	if enriched.ContactPhone != "+15559876543" {
		t.Errorf("phone = %s, want value from website", enriched.ContactPhone)
	}
}

func TestEnrichWithoutWebsite(t *testing.T) {
	tr := newTestRepos()
	svc := newLeadService(tr.repos, &stubFetcher{}, noopLogger{})
	lead := &models.Lead{OutletName: "No Site", Status: models.LeadStatusNew}
	tr.lead.Create(lead)

	_, err := svc.Enrich(context.Background(), lead.ID.String())
	if apperrors.CodeOf(err) != apperrors.ErrCodeValidationError {
		t.Errorf("error code = %s, want VALIDATION_ERROR", apperrors.CodeOf(err))
	}
}

func TestEnrichFetchFailure(t *testing.T) {
	tr := newTestRepos()
	fetcher := &stubFetcher{err: errors.New("connection refused")}
	svc := newLeadService(tr.repos, fetcher, noopLogger{})
	lead := newLeadFixture(tr, models.LeadStatusNew)
	before := tr.lead.updates

	_, err := svc.Enrich(context.Background(), lead.ID.String())
	if err == nil {
		t.Fatal("expected an error when the fetch fails")
	}
	if tr.lead.updates != before {
		t.Error("lead was updated despite fetch failure")
	}
}
