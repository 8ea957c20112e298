package services

import (
	"testing"

	"quickbite/entity"
)

func TestApproveCreatesExactlyOneStore(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())
	staff := NewStaffService(db)

	app, err := apps.Submit(&SubmitApplicationIn{
		Email: "cook@x.com", StoreName: "Rice & Shine",
		Category: "thai", Password: "grillz",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	out, err := apps.Approve(app.ID, "")
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if out.StoreID == 0 {
		t.Fatal("approve did not create a store")
	}

	// re-approving the same application must fail and never duplicate the store
	if _, err := apps.Approve(app.ID, ""); err != ErrNotPending {
		t.Fatalf("second approve: got %v, want ErrNotPending", err)
	}

	// staff login afterwards reuses the existing store
	u, err := staff.Login("cook@x.com", "grillz")
	if err != nil {
		t.Fatalf("staff login: %v", err)
	}
	if u.Role != entity.RoleStaff {
		t.Fatalf("role = %q, want staff", u.Role)
	}

	var storeCnt int64
	db.Model(&entity.Store{}).Where("name = ?", "Rice & Shine").Count(&storeCnt)
	if storeCnt != 1 {
		t.Fatalf("store count = %d, want 1", storeCnt)
	}
}

func TestApproveRequiresSomeCredential(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())

	app, err := apps.Submit(&SubmitApplicationIn{Email: "nopw@x.com", StoreName: "Soupery"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// nothing staged, nothing supplied
	if _, err := apps.Approve(app.ID, ""); err != ErrNoStagedPassword {
		t.Fatalf("got %v, want ErrNoStagedPassword", err)
	}

	// an explicit password both creates the Account and stages the credential
	if _, err := apps.Approve(app.ID, "letmein"); err != nil {
		t.Fatalf("approve with password: %v", err)
	}
	auth := NewAuthService(db, newTestMailer(), nil)
	if _, err := auth.Login("nopw@x.com", "letmein"); err != nil {
		t.Fatalf("login after approval: %v", err)
	}
}

func TestApproveUnknownApplication(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())
	if _, err := apps.Approve(9999, "pw"); err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestRejectArchivesAndRevokes(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())
	staff := NewStaffService(db)

	app, err := apps.Submit(&SubmitApplicationIn{
		Email: "no@x.com", StoreName: "Burnt Toast", Password: "pw",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	rejected, err := apps.Reject(app.ID, "incomplete papers")
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != entity.AppRejected || rejected.RejectReason == nil {
		t.Fatalf("rejection not recorded: %+v", rejected)
	}

	// archived for the audit trail, credential revoked
	var archived int64
	db.Model(&entity.RejectedStaff{}).Where("email = ?", "no@x.com").Count(&archived)
	if archived != 1 {
		t.Fatalf("archive count = %d, want 1", archived)
	}
	var staged int64
	db.Model(&entity.ApprovedStaff{}).Where("email = ?", "no@x.com").Count(&staged)
	if staged != 0 {
		t.Fatal("staged credential survived rejection")
	}

	// revoked credential means plain invalid-credential at login
	if _, err := staff.Login("no@x.com", "pw"); err != ErrInvalidCredential {
		t.Fatalf("login after revoke: got %v, want ErrInvalidCredential", err)
	}

	// with a freshly staged credential the rejection itself still gates login
	if err := staff.Provision("no@x.com", "pw2"); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := staff.Login("no@x.com", "pw2"); err != ErrStaffRejected {
		t.Fatalf("login after rejection: got %v, want ErrStaffRejected", err)
	}

	// and re-rejecting is refused
	if _, err := apps.Reject(app.ID, "again"); err != ErrNotPending {
		t.Fatalf("second reject: got %v, want ErrNotPending", err)
	}
}

// A rejection must not hold the email hostage: the applicant can apply again,
// password staging included, and the fresh application can be approved.
func TestReapplyAfterRejection(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())
	staff := NewStaffService(db)

	first, err := apps.Submit(&SubmitApplicationIn{
		Email: "retry@x.com", StoreName: "First Try", Password: "pw1",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := apps.Reject(first.ID, "menu too small"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	second, err := apps.Submit(&SubmitApplicationIn{
		Email: "retry@x.com", StoreName: "Second Try", Password: "pw2",
	})
	if err != nil {
		t.Fatalf("re-submit after rejection: %v", err)
	}
	if _, err := apps.Approve(second.ID, ""); err != nil {
		t.Fatalf("approve re-application: %v", err)
	}
	u, err := staff.Login("retry@x.com", "pw2")
	if err != nil {
		t.Fatalf("staff login after re-approval: %v", err)
	}
	if u.Role != entity.RoleStaff {
		t.Fatalf("role = %q, want staff", u.Role)
	}
}

func TestStaffLoginGates(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())
	staff := NewStaffService(db)

	// staged credential but no application at all
	if err := staff.Provision("lone@x.com", "pw"); err != nil {
		t.Fatalf("provision: %v", err)
	}
	if _, err := staff.Login("lone@x.com", "pw"); err != ErrStaffPending {
		t.Fatalf("no application: got %v, want ErrStaffPending", err)
	}

	// pending application
	if _, err := apps.Submit(&SubmitApplicationIn{
		Email: "wait@x.com", StoreName: "Queue Cuisine", Password: "pw",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := staff.Login("wait@x.com", "pw"); err != ErrStaffPending {
		t.Fatalf("pending application: got %v, want ErrStaffPending", err)
	}

	// wrong password never reaches the status gate
	if _, err := staff.Login("wait@x.com", "nope"); err != ErrInvalidCredential {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredential", err)
	}
}

func TestStaffLoginIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())
	staff := NewStaffService(db)

	app, err := apps.Submit(&SubmitApplicationIn{
		Email: "twice@x.com", StoreName: "Double Dip", Password: "pw",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := apps.Approve(app.ID, ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	u1, err := staff.Login("twice@x.com", "pw")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	u2, err := staff.Login("twice@x.com", "pw")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}
	if u1.ID != u2.ID {
		t.Fatalf("logins produced different users: %d vs %d", u1.ID, u2.ID)
	}

	var stores int64
	db.Model(&entity.Store{}).Count(&stores)
	if stores != 1 {
		t.Fatalf("store count = %d, want 1", stores)
	}
}

func TestResendEmailsCheckStatus(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, newTestMailer())

	app, err := apps.Submit(&SubmitApplicationIn{
		Email: "mail@x.com", StoreName: "Mail Meals", Password: "pw",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// pending application matches neither resend endpoint
	if err := apps.ResendApproval(app.ID); err != ErrNotPending {
		t.Fatalf("resend approval on pending: got %v, want ErrNotPending", err)
	}
	if err := apps.ResendRejection(app.ID); err != ErrNotPending {
		t.Fatalf("resend rejection on pending: got %v, want ErrNotPending", err)
	}
	if err := apps.ResendApproval(9999); err != ErrNotFound {
		t.Fatalf("resend on unknown id: got %v, want ErrNotFound", err)
	}
}
