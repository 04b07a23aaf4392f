package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mmynk/chitwiser/internal/auth"
	"github.com/mmynk/chitwiser/internal/engine"
	"github.com/mmynk/chitwiser/internal/storage/sqlite"
	"github.com/mmynk/chitwiser/pkg/api"
)

const adminPhone = "+919000000000"

type testServer struct {
	auth    api.AuthServiceClient
	groups  api.GroupServiceClient
	ledger  api.LedgerServiceClient
	bidding api.BiddingServiceClient
	reports api.ReportServiceClient

	adminToken string
}

// setupTestServer serves every service over httptest backed by a temp database
// with a bootstrap admin.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	directory := auth.NewDirectory(store)
	if _, _, err := directory.EnsureAdmin(context.Background(), "Admin", adminPhone, "adminpass1"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}

	r := chi.NewRouter()
	Mount(r, Deps{
		Engine:        engine.New(store, directory, engine.WithLogger(logger)),
		Authenticator: auth.NewPasswordAuthenticator(store),
		Directory:     directory,
		JWT:           auth.NewJWTManager("test-secret", time.Hour),
		Logger:        logger,
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	ts := &testServer{
		auth:    api.NewAuthServiceClient(http.DefaultClient, server.URL),
		groups:  api.NewGroupServiceClient(http.DefaultClient, server.URL),
		ledger:  api.NewLedgerServiceClient(http.DefaultClient, server.URL),
		bidding: api.NewBiddingServiceClient(http.DefaultClient, server.URL),
		reports: api.NewReportServiceClient(http.DefaultClient, server.URL),
	}
	ts.adminToken = ts.login(t, adminPhone, "adminpass1")
	return ts
}

func (ts *testServer) login(t *testing.T, phone, password string) string {
	t.Helper()
	resp, err := ts.auth.Login(context.Background(), connect.NewRequest(&api.LoginRequest{Phone: phone, Password: password}))
	if err != nil {
		t.Fatalf("Login(%s) failed: %v", phone, err)
	}
	return resp.Msg.Token
}

// signup registers an account, approves it as admin and logs it in.
func (ts *testServer) signup(t *testing.T, name, phone, role string) (string, string) {
	t.Helper()
	ctx := context.Background()
	reg, err := ts.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Name: name, Phone: phone, Password: "password123", Role: role,
	}))
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", name, err)
	}
	if _, err := ts.auth.ApproveUser(ctx, authed(&api.ApproveUserRequest{UserID: reg.Msg.User.ID}, ts.adminToken)); err != nil {
		t.Fatalf("ApproveUser(%s) failed: %v", name, err)
	}
	return reg.Msg.User.ID, ts.login(t, phone, "password123")
}

func authed[T any](msg *T, token string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", "Bearer "+token)
	return req
}

func wantCode(t *testing.T, err error, code connect.Code, kind string) {
	t.Helper()
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected connect error, got %v", err)
	}
	if cerr.Code() != code {
		t.Errorf("code = %v, want %v (%v)", cerr.Code(), code, err)
	}
	if got := cerr.Meta().Get(api.ErrorKindHeader); got != kind {
		t.Errorf("%s = %q, want %q", api.ErrorKindHeader, got, kind)
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestAuthService(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	reg, err := ts.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Name: "Asha", Phone: "+911111111111", Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if reg.Msg.User.Role != "MEMBER" || reg.Msg.User.ApprovalStatus != "PENDING" {
		t.Errorf("unexpected registration: %+v", reg.Msg.User)
	}

	t.Run("pending account cannot log in", func(t *testing.T) {
		_, err := ts.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Phone: "+911111111111", Password: "password123"}))
		if connect.CodeOf(err) != connect.CodePermissionDenied {
			t.Errorf("code = %v, want PermissionDenied", connect.CodeOf(err))
		}
	})

	t.Run("duplicate phone", func(t *testing.T) {
		_, err := ts.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
			Name: "Asha Again", Phone: "+911111111111", Password: "password123",
		}))
		if connect.CodeOf(err) != connect.CodeAlreadyExists {
			t.Errorf("code = %v, want AlreadyExists", connect.CodeOf(err))
		}
	})

	t.Run("admin lists pending users", func(t *testing.T) {
		resp, err := ts.auth.ListUsers(ctx, authed(&api.ListUsersRequest{ApprovalStatus: "PENDING"}, ts.adminToken))
		if err != nil {
			t.Fatalf("ListUsers failed: %v", err)
		}
		if len(resp.Msg.Users) != 1 || resp.Msg.Users[0].ID != reg.Msg.User.ID {
			t.Errorf("pending users = %+v", resp.Msg.Users)
		}
	})

	t.Run("approved account logs in", func(t *testing.T) {
		if _, err := ts.auth.ApproveUser(ctx, authed(&api.ApproveUserRequest{UserID: reg.Msg.User.ID}, ts.adminToken)); err != nil {
			t.Fatalf("ApproveUser failed: %v", err)
		}
		token := ts.login(t, "+911111111111", "password123")

		me, err := ts.auth.GetCurrentUser(ctx, authed(&api.GetCurrentUserRequest{}, token))
		if err != nil {
			t.Fatalf("GetCurrentUser failed: %v", err)
		}
		if me.Msg.User.ID != reg.Msg.User.ID || me.Msg.User.ApprovalStatus != "APPROVED" {
			t.Errorf("current user = %+v", me.Msg.User)
		}

		_, err = ts.auth.RejectUser(ctx, authed(&api.RejectUserRequest{UserID: reg.Msg.User.ID}, token))
		wantCode(t, err, connect.CodePermissionDenied, "FORBIDDEN")
	})

	t.Run("services require a token", func(t *testing.T) {
		_, err := ts.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want Unauthenticated", connect.CodeOf(err))
		}
		_, err = ts.groups.ListGroups(ctx, authed(&api.ListGroupsRequest{}, "bogus"))
		if connect.CodeOf(err) != connect.CodeUnauthenticated {
			t.Errorf("code = %v, want Unauthenticated", connect.CodeOf(err))
		}
	})
}

func TestChitLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	_, employeeToken := ts.signup(t, "Ravi", "+912000000000", "EMPLOYEE")
	var members []string
	memberTokens := map[string]string{}
	for i, phone := range []string{"+913000000001", "+913000000002", "+913000000003"} {
		id, token := ts.signup(t, []string{"U1", "U2", "U3"}[i], phone, "MEMBER")
		members = append(members, id)
		memberTokens[id] = token
	}
	u1, u2, u3 := members[0], members[1], members[2]

	created, err := ts.groups.CreateGroup(ctx, authed(&api.CreateGroupRequest{
		Name: "Office Chit", TotalMembers: 3, TotalMonths: 3, MonthlyContribution: dec("1000"),
	}, ts.adminToken))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := created.Msg.Group.ID

	_, err = ts.groups.CreateGroup(ctx, authed(&api.CreateGroupRequest{
		Name: "Rogue", TotalMembers: 3, TotalMonths: 3, MonthlyContribution: dec("1000"),
	}, employeeToken))
	wantCode(t, err, connect.CodePermissionDenied, "FORBIDDEN")

	for _, id := range members {
		if _, err := ts.groups.AddMember(ctx, authed(&api.AddMemberRequest{GroupID: groupID, UserID: id}, ts.adminToken)); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
	}
	_, err = ts.groups.AddMember(ctx, authed(&api.AddMemberRequest{GroupID: groupID, UserID: u1}, ts.adminToken))
	wantCode(t, err, connect.CodeResourceExhausted, "CAPACITY_EXCEEDED")

	activated, err := ts.groups.ActivateGroup(ctx, authed(&api.ActivateGroupRequest{GroupID: groupID}, ts.adminToken))
	if err != nil {
		t.Fatalf("ActivateGroup failed: %v", err)
	}
	if activated.Msg.Group.Status != "ACTIVE" {
		t.Errorf("status = %s, want ACTIVE", activated.Msg.Group.Status)
	}

	t.Run("monthly limit", func(t *testing.T) {
		contribute := func(amount string) error {
			_, err := ts.ledger.LogContribution(ctx, authed(&api.LogContributionRequest{
				GroupID: groupID, UserID: u1, MonthNumber: 1, Amount: dec(amount), PaymentMode: "UPI",
			}, employeeToken))
			return err
		}
		if err := contribute("600"); err != nil {
			t.Fatalf("LogContribution failed: %v", err)
		}
		err := contribute("600")
		wantCode(t, err, connect.CodeResourceExhausted, "LIMIT_EXCEEDED")
		var cerr *connect.Error
		if errors.As(err, &cerr) {
			if cerr.Meta().Get("Chit-Error-Paid") != "600" || cerr.Meta().Get("Chit-Error-Limit") != "1000" {
				t.Errorf("limit headers = paid %q limit %q", cerr.Meta().Get("Chit-Error-Paid"), cerr.Meta().Get("Chit-Error-Limit"))
			}
		}

		list, err := ts.ledger.ListContributions(ctx, authed(&api.ListContributionsRequest{GroupID: groupID}, memberTokens[u2]))
		if err != nil {
			t.Fatalf("ListContributions failed: %v", err)
		}
		if len(list.Msg.Transactions) != 0 {
			t.Errorf("U2 sees %d entries, want 0", len(list.Msg.Transactions))
		}
	})

	cur, err := ts.bidding.GetCurrentRound(ctx, authed(&api.GetCurrentRoundRequest{GroupID: groupID}, memberTokens[u1]))
	if err != nil {
		t.Fatalf("GetCurrentRound failed: %v", err)
	}
	roundID := cur.Msg.Round.ID
	if _, err := ts.bidding.OpenRound(ctx, authed(&api.OpenRoundRequest{RoundID: roundID}, ts.adminToken)); err != nil {
		t.Fatalf("OpenRound failed: %v", err)
	}
	for id, amount := range map[string]string{u1: "800", u2: "900", u3: "950"} {
		if _, err := ts.bidding.PlaceBid(ctx, authed(&api.PlaceBidRequest{RoundID: roundID, BidAmount: dec(amount)}, memberTokens[id])); err != nil {
			t.Fatalf("PlaceBid failed: %v", err)
		}
	}
	if _, err := ts.bidding.CloseRound(ctx, authed(&api.CloseRoundRequest{RoundID: roundID}, ts.adminToken)); err != nil {
		t.Fatalf("CloseRound failed: %v", err)
	}

	final, err := ts.bidding.FinalizeRound(ctx, authed(&api.FinalizeRoundRequest{RoundID: roundID, PaymentMode: "CASH"}, ts.adminToken))
	if err != nil {
		t.Fatalf("FinalizeRound failed: %v", err)
	}
	round := final.Msg.Round
	if round.WinnerUserID != u3 || !round.PayoutAmount.Equal(dec("950")) || !round.DividendPerMember.Equal(dec("1025")) {
		t.Errorf("outcome = winner %s payout %s dividend %s", round.WinnerUserID, round.PayoutAmount, round.DividendPerMember)
	}

	again, err := ts.bidding.FinalizeRound(ctx, authed(&api.FinalizeRoundRequest{RoundID: roundID}, ts.adminToken))
	if err != nil {
		t.Fatalf("repeated FinalizeRound failed: %v", err)
	}
	if !again.Msg.AlreadyFinalized || again.Msg.Round.WinnerUserID != u3 {
		t.Errorf("repeat = %+v, want already finalized with the same winner", again.Msg)
	}

	group, err := ts.groups.GetGroup(ctx, authed(&api.GetGroupRequest{GroupID: groupID}, memberTokens[u3]))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if group.Msg.Group.CurrentMonth != 2 {
		t.Errorf("current month = %d, want 2", group.Msg.Group.CurrentMonth)
	}

	summary, err := ts.reports.GetGroupSummary(ctx, authed(&api.GetGroupSummaryRequest{GroupID: groupID}, ts.adminToken))
	if err != nil {
		t.Fatalf("GetGroupSummary failed: %v", err)
	}
	if !summary.Msg.Summary.TotalRotated.Equal(dec("3000")) || !summary.Msg.Summary.TotalPaidOut.Equal(dec("950")) {
		t.Errorf("summary = %+v", summary.Msg.Summary)
	}

	mine, err := ts.reports.GetMemberSummary(ctx, authed(&api.GetMemberSummaryRequest{}, memberTokens[u1]))
	if err != nil {
		t.Fatalf("GetMemberSummary failed: %v", err)
	}
	if mine.Msg.UserID != u1 || !mine.Msg.TotalPaid.Equal(dec("600")) {
		t.Errorf("U1 summary = %+v", mine.Msg)
	}

	_, err = ts.reports.GetDashboard(ctx, authed(&api.GetDashboardRequest{}, employeeToken))
	wantCode(t, err, connect.CodePermissionDenied, "FORBIDDEN")

	dash, err := ts.reports.GetDashboard(ctx, authed(&api.GetDashboardRequest{}, ts.adminToken))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if dash.Msg.TotalGroups != 1 || dash.Msg.GroupsByStatus["ACTIVE"] != 1 {
		t.Errorf("dashboard = %+v", dash.Msg)
	}
}
