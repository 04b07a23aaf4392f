package api

const (
	AuthServiceName    = "chitwiser.v1.AuthService"
	GroupServiceName   = "chitwiser.v1.GroupService"
	LedgerServiceName  = "chitwiser.v1.LedgerService"
	BiddingServiceName = "chitwiser.v1.BiddingService"
	ReportServiceName  = "chitwiser.v1.ReportService"
)

const (
	AuthServiceRegisterProcedure       = "/" + AuthServiceName + "/Register"
	AuthServiceLoginProcedure          = "/" + AuthServiceName + "/Login"
	AuthServiceGetCurrentUserProcedure = "/" + AuthServiceName + "/GetCurrentUser"
	AuthServiceListUsersProcedure      = "/" + AuthServiceName + "/ListUsers"
	AuthServiceApproveUserProcedure    = "/" + AuthServiceName + "/ApproveUser"
	AuthServiceRejectUserProcedure     = "/" + AuthServiceName + "/RejectUser"

	GroupServiceCreateGroupProcedure   = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceGetGroupProcedure      = "/" + GroupServiceName + "/GetGroup"
	GroupServiceListGroupsProcedure    = "/" + GroupServiceName + "/ListGroups"
	GroupServiceAddMemberProcedure     = "/" + GroupServiceName + "/AddMember"
	GroupServiceActivateGroupProcedure = "/" + GroupServiceName + "/ActivateGroup"

	LedgerServiceLogContributionProcedure   = "/" + LedgerServiceName + "/LogContribution"
	LedgerServiceListContributionsProcedure = "/" + LedgerServiceName + "/ListContributions"

	BiddingServiceOpenRoundProcedure       = "/" + BiddingServiceName + "/OpenRound"
	BiddingServicePlaceBidProcedure        = "/" + BiddingServiceName + "/PlaceBid"
	BiddingServiceCloseRoundProcedure      = "/" + BiddingServiceName + "/CloseRound"
	BiddingServiceFinalizeRoundProcedure   = "/" + BiddingServiceName + "/FinalizeRound"
	BiddingServiceGetRoundProcedure        = "/" + BiddingServiceName + "/GetRound"
	BiddingServiceGetCurrentRoundProcedure = "/" + BiddingServiceName + "/GetCurrentRound"
	BiddingServiceListRoundsProcedure      = "/" + BiddingServiceName + "/ListRounds"

	ReportServiceGetGroupSummaryProcedure       = "/" + ReportServiceName + "/GetGroupSummary"
	ReportServiceGetMemberSummaryProcedure      = "/" + ReportServiceName + "/GetMemberSummary"
	ReportServiceGetMemberGroupSummaryProcedure = "/" + ReportServiceName + "/GetMemberGroupSummary"
	ReportServiceGetPendingForMonthProcedure    = "/" + ReportServiceName + "/GetPendingForMonth"
	ReportServiceGetDashboardProcedure          = "/" + ReportServiceName + "/GetDashboard"
)

// ErrorKindHeader carries the domain error kind (e.g. "LIMIT_EXCEEDED") on
// failed calls. Error details travel in headers named ErrorMetaPrefix plus
// the detail key, such as Chit-Error-Paid.
const (
	ErrorKindHeader = "Chit-Error-Kind"
	ErrorMetaPrefix = "Chit-Error-"
)

// ErrorHeaders lists every error header a failed call may carry.
var ErrorHeaders = []string{
	ErrorKindHeader,
	ErrorMetaPrefix + "Paid",
	ErrorMetaPrefix + "Limit",
}
