package dto

// RegisterRequest entrada del registro: cuenta + primera tienda + usuario admin.
type RegisterRequest struct {
	AccountName string `json:"account_name" validate:"required,min=2,max=200"`
	StoreName   string `json:"store_name" validate:"required,min=2,max=200"`
	AdminName   string `json:"admin_name" validate:"required,min=2,max=200"`
	AdminEmail  string `json:"admin_email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

// RegisterResponse salida del registro. StoreCode y UserCode son las
// credenciales de login; se muestran una sola vez al terminar el registro.
type RegisterResponse struct {
	AccountID string `json:"account_id"`
	StoreID   string `json:"store_id"`
	UserID    string `json:"user_id"`
	StoreCode string `json:"store_code"`
	UserCode  string `json:"user_code"`
}

// LoginRequest entrada del login: los dos códigos cortos. Se normalizan a
// mayúsculas antes de resolver.
type LoginRequest struct {
	StoreCode string `json:"store_code" validate:"required,len=5"`
	UserCode  string `json:"user_code" validate:"required,len=5"`
}

// LoginResponse salida del login con la identidad resuelta.
type LoginResponse struct {
	StoreID   string `json:"store_id"`
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
	UserName  string `json:"user_name"`
	Role      string `json:"role"`
}

// SessionResponse estado de la sesión actual. Role se relee de la base en
// cada consulta; AccountName/StoreName se resuelven si hay ids presentes.
type SessionResponse struct {
	StoreID     string `json:"store_id,omitempty"`
	UserID      string `json:"user_id,omitempty"`
	AccountID   string `json:"account_id,omitempty"`
	IsLoggedIn  bool   `json:"is_logged_in"`
	Role        string `json:"role,omitempty"`
	AccountName string `json:"account_name,omitempty"`
	StoreName   string `json:"store_name,omitempty"`
}
