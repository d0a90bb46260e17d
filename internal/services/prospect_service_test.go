package services

import (
	"strings"
	"testing"
	"time"

	apperrors "github.com/glowdesk/crm-api/internal/errors"
	"github.com/glowdesk/crm-api/internal/models"
)

func newProspectFixture(tr *testRepos) *models.Prospect {
	prospect := &models.Prospect{
		ProspectName:   "Glow Day Spa",
		BusinessType:   "spa",
		ContactName:    "Maria Santos",
		ContactEmail:   "maria@glowdayspa.example",
		EstimatedValue: 48000,
		ProspectScore:  65,
		Status:         models.ProspectStatusQualified,
	}
	if err := tr.prospect.Create(prospect); err != nil {
		panic(err)
	}
	return prospect
}

func validForm() *ProspectConversionForm {
	closeDate := time.Now().AddDate(0, 3, 0)
	return &ProspectConversionForm{
		AccountName:     "Glow Day Spa",
		OpportunityName: "Initial product order",
		CloseDate:       &closeDate,
	}
}

func TestConvertProspect(t *testing.T) {
	tr := newTestRepos()
	svc := newProspectService(tr.repos, noopLogger{})
	prospect := newProspectFixture(tr)

	result, err := svc.ConvertToAccount(prospect.ID.String(), validForm())
	if err != nil {
		t.Fatalf("ConvertToAccount() error = %v", err)
	}

	if result.ContactID == nil || result.OpportunityID == nil {
		t.Fatalf("result = %+v, want contact and opportunity IDs", result)
	}
	if tr.account.creates != 1 || tr.contact.creates != 1 || tr.opportunity.creates != 1 {
		t.Errorf("creates = %d/%d/%d (account/contact/opportunity), want 1/1/1",
			tr.account.creates, tr.contact.creates, tr.opportunity.creates)
	}

	var opp *models.Opportunity
	for _, o := range tr.opportunity.opps {
		opp = o
	}
	if opp.Stage != models.OppStageProspecting {
		t.Errorf("opportunity stage = %s, want Prospecting", opp.Stage)
	}
	if opp.Probability != 65 {
		t.Errorf("probability = %d, want 65 from prospect score", opp.Probability)
	}
	// 48000 * 65 / 100
	if opp.ExpectedRevenue != 31200 {
		t.Errorf("expected revenue = %v, want 31200", opp.ExpectedRevenue)
	}

	updated, _ := tr.prospect.GetByID(prospect.ID)
	if updated.Status != models.ProspectStatusConverted {
		t.Errorf("prospect status = %s, want Converted", updated.Status)
	}
}

func TestConvertProspectMissingFields(t *testing.T) {
	tr := newTestRepos()
	svc := newProspectService(tr.repos, noopLogger{})
	prospect := newProspectFixture(tr)

	form := &ProspectConversionForm{AccountName: "Glow Day Spa"}
	_, err := svc.ConvertToAccount(prospect.ID.String(), form)

	if apperrors.CodeOf(err) != apperrors.ErrCodeValidationError {
		t.Fatalf("error code = %s, want VALIDATION_ERROR", apperrors.CodeOf(err))
	}
	msg := err.Error()
	if !strings.Contains(msg, "opportunity_name") || !strings.Contains(msg, "close_date") {
		t.Errorf("error should name every missing field, got %q", msg)
	}
	if tr.account.creates != 0 || tr.contact.creates != 0 || tr.opportunity.creates != 0 {
		t.Errorf("creates = %d/%d/%d, want none before validation passes",
			tr.account.creates, tr.contact.creates, tr.opportunity.creates)
	}
	if tr.tx.calls != 0 {
		t.Errorf("transaction started %d times despite validation failure", tr.tx.calls)
	}
}

func TestConvertProspectFormContactWins(t *testing.T) {
	tr := newTestRepos()
	svc := newProspectService(tr.repos, noopLogger{})
	prospect := newProspectFixture(tr)

	form := validForm()
	form.ContactName = "Ana Duarte"
	form.ContactEmail = "ana@glowdayspa.example"
	form.ContactRole = "Owner"

	result, err := svc.ConvertToAccount(prospect.ID.String(), form)
	if err != nil {
		t.Fatalf("ConvertToAccount() error = %v", err)
	}
	if result.ContactID == nil {
		t.Fatal("result has no contact ID")
	}

	var contact *models.Contact
	for _, c := range tr.contact.contacts {
		contact = c
	}
	if contact.FirstName != "Ana" || contact.LastName != "Duarte" {
		t.Errorf("contact name = %q %q, want Ana Duarte from the form", contact.FirstName, contact.LastName)
	}
	if contact.Email != "ana@glowdayspa.example" {
		t.Errorf("contact email = %q, want the form email, not the prospect's %q",
			contact.Email, prospect.ContactEmail)
	}
	if contact.Role != "Owner" {
		t.Errorf("contact role = %q, want Owner", contact.Role)
	}
}

func TestConvertProspectContactFallback(t *testing.T) {
	tr := newTestRepos()
	svc := newProspectService(tr.repos, noopLogger{})
	prospect := newProspectFixture(tr)

	// The form names no contact, so the prospect's stored contact fills in.
	result, err := svc.ConvertToAccount(prospect.ID.String(), validForm())
	if err != nil {
		t.Fatalf("ConvertToAccount() error = %v", err)
	}
	if result.ContactID == nil {
		t.Fatal("result has no contact ID")
	}

	var contact *models.Contact
	for _, c := range tr.contact.contacts {
		contact = c
	}
	if contact.FirstName != "Maria" || contact.LastName != "Santos" {
		t.Errorf("contact name = %q %q, want Maria Santos from the prospect", contact.FirstName, contact.LastName)
	}
	if contact.Email != "maria@glowdayspa.example" {
		t.Errorf("contact email = %q, want the prospect email", contact.Email)
	}
}

func TestConvertProspectTwiceFails(t *testing.T) {
	tr := newTestRepos()
	svc := newProspectService(tr.repos, noopLogger{})
	prospect := newProspectFixture(tr)

	if _, err := svc.ConvertToAccount(prospect.ID.String(), validForm()); err != nil {
		t.Fatalf("first conversion failed: %v", err)
	}

	_, err := svc.ConvertToAccount(prospect.ID.String(), validForm())
	if apperrors.CodeOf(err) != apperrors.ErrCodeAlreadyConverted {
		t.Errorf("error code = %s, want ALREADY_CONVERTED", apperrors.CodeOf(err))
	}
	if tr.account.creates != 1 {
		t.Errorf("account creates = %d after double conversion, want 1", tr.account.creates)
	}
}

func TestConversionProbabilityPrecedence(t *testing.T) {
	seventy := 70
	tests := []struct {
		name          string
		formValue     *int
		prospectScore int
		expected      int
	}{
		{"Form value wins", &seventy, 65, 70},
		{"Prospect score next", nil, 65, 65},
		{"Default when both absent", nil, 0, 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			form.Probability = tc.formValue
			prospect := &models.Prospect{ProspectScore: tc.prospectScore}

			if got := conversionProbability(form, prospect); got != tc.expected {
				t.Errorf("conversionProbability() = %d, want %d", got, tc.expected)
			}
		})
	}
}

func TestConvertProspectAccountTypeFromBusinessType(t *testing.T) {
	tr := newTestRepos()
	svc := newProspectService(tr.repos, noopLogger{})
	prospect := newProspectFixture(tr)

	result, err := svc.ConvertToAccount(prospect.ID.String(), validForm())
	if err != nil {
		t.Fatalf("ConvertToAccount() error = %v", err)
	}

	for _, a := range tr.account.accounts {
		if a.ID.String() == result.AccountID && a.AccountType != models.AccountTypeSpa {
			t.Errorf("account type = %s, want Spa from business type", a.AccountType)
		}
	}
}
