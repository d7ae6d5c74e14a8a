package validation

// User-facing messages.
const (
	MsgUsernameRequired = "Vui lòng nhập tên đăng nhập"
	MsgUsernameTooShort = "Tên đăng nhập phải có ít nhất 3 ký tự"
	MsgUsernameTooLong  = "Tên đăng nhập không được vượt quá 50 ký tự"
	MsgPasswordRequired = "Vui lòng nhập mật khẩu"
	MsgPasswordTooShort = "Mật khẩu phải có ít nhất 6 ký tự"
	MsgPasswordTooLong  = "Mật khẩu không được vượt quá 128 ký tự"

	MsgGoogleTokenRequired = "Thiếu Google ID token"
	MsgGoogleTokenInvalid  = "Google ID token không hợp lệ"

	MsgOdometerRequired = "Vui lòng nhập số km hiện tại"
	MsgOdometerNumber   = "Số km phải là một số hợp lệ"
	MsgOdometerNegative = "Số km không được âm"
	MsgBatteryRequired  = "Vui lòng nhập mức pin hiện tại"
	MsgBatteryNumber    = "Mức pin phải là một số hợp lệ"
	MsgBatteryRange     = "Mức pin phải nằm trong khoảng 0 đến 100"

	MsgChargeStartRange = "Mức pin bắt đầu phải từ 0 đến 100"
	MsgChargeEndRange   = "Mức pin kết thúc phải từ 0 đến 100"
	MsgChargeEndAbove   = "Mức pin kết thúc phải lớn hơn mức pin bắt đầu"

	MsgFeeTypeRequired = "Vui lòng chọn loại phí"
	MsgFeeAmount       = "Số tiền phí phải lớn hơn 0"

	MsgIDNumberRequired  = "Vui lòng nhập số giấy tờ"
	MsgIssueBeforeExpiry = "Ngày cấp phải trước ngày hết hạn"
	MsgBirthBeforeIssue  = "Ngày sinh phải trước ngày cấp"
	MsgLicenseClass      = "Vui lòng nhập hạng bằng lái"
	MsgDateFormat        = "Ngày không hợp lệ (yyyy-mm-dd)"
)
