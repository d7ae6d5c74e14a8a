package workflow

const (
	msgBookingRequired = "Thiếu mã đặt xe"
	msgPhotosRequired  = "Vui lòng chụp ít nhất một ảnh xe"
)
