package datasource

import "net/url"

// Settlement service routes.
const (
	PathLogin            = "/auth/login"
	PathGoogleLogin      = "/auth/google"
	PathVerifyOtp        = "/auth/verifyOtp"
	PathResendOtp        = "/auth/resendOtp"
	PathProfile          = "/auth/profile"
	PathAnalyzeReturn    = "/rentalReturn/analyzeReturn"
	PathCreateReceipt    = "/rentalReturn/createReceipt"
	PathFinalize         = "/rentalReturn/finalizeReturn"
	PathVehicleSwap      = "/rentalReturn/vehicleSwap"
	PathUpdateReceipt    = "/rentalReturn/updateReturnReceipt"
	PathAdditionalFee    = "/additionalFee"
	PathStartCharging    = "/charging/start"
	PathCompleteCharging = "/charging/complete"
	PathInviteSharing    = "/gpsSharing/invite"
	PathJoinSharing      = "/gpsSharing/join"
	PathMyDocuments      = "/document/me"
	PathCitizenID        = "/document/citizenId"
	PathDrivingLicense   = "/document/drivingLicense"
)

func SummaryPath(bookingID string) string {
	return "/rentalReturn/summary/" + url.PathEscape(bookingID)
}

func BookingFeesPath(bookingID string) string {
	return "/additionalFee/booking/" + url.PathEscape(bookingID)
}

func FeePath(feeID string) string {
	return "/additionalFee/" + url.PathEscape(feeID)
}

func BookingChargingPath(bookingID string) string {
	return "/charging/booking/" + url.PathEscape(bookingID)
}

func SharingSessionPath(sessionID string) string {
	return "/gpsSharing/" + url.PathEscape(sessionID)
}

func DocumentPath(documentID string) string {
	return "/document/" + url.PathEscape(documentID)
}
