package entity

// Screen はナビゲーションスタック上の画面名です。
type Screen string

const (
	ScreenRegistration Screen = "Registration"
	ScreenLogin        Screen = "Login"
	ScreenDashboard    Screen = "Dashboard"
)
