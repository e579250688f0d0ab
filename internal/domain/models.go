package domain

import "github.com/shopspring/decimal"

// TimeLayout is the format written to ordertime/updatedon.
const TimeLayout = "2006-01-02 15:04:05"

type Store struct {
	ID        int64   `db:"storeid" json:"store_id"`
	Name      string  `db:"name" json:"name"`
	ManagerID int64   `db:"managerid" json:"manager_id"`
	Lat       float64 `db:"latitude" json:"latitude"`
	Lon       float64 `db:"longitude" json:"longitude"`
}

type NearbyStore struct {
	Store
	Distance float64 `json:"distance"`
}

type Product struct {
	StoreID int64           `db:"storeid" json:"store_id"`
	Name    string          `db:"productname" json:"product_name"`
	Units   int             `db:"numberofunits" json:"units"`
	Price   decimal.Decimal `db:"priceperunit" json:"price"`
}

type Order struct {
	Number      int64  `db:"ordernumber" json:"order_number"`
	CustomerID  int64  `db:"customerid" json:"customer_id"`
	StoreID     int64  `db:"storeid" json:"store_id"`
	ProductName string `db:"productname" json:"product_name"`
	Units       int    `db:"unitsordered" json:"units"`
	Time        string `db:"ordertime" json:"order_time"`
}

// ProductUpdate is one row of the product audit log.
type ProductUpdate struct {
	Number      int64  `db:"updatenumber" json:"update_number"`
	ManagerID   int64  `db:"managerid" json:"manager_id"`
	StoreID     int64  `db:"storeid" json:"store_id"`
	ProductName string `db:"productname" json:"product_name"`
	UpdatedOn   string `db:"updatedon" json:"updated_on"`
}

type SupplyRequest struct {
	Number      int64  `db:"requestnumber" json:"request_number"`
	ManagerID   int64  `db:"managerid" json:"manager_id"`
	WarehouseID int64  `db:"warehouseid" json:"warehouse_id"`
	StoreID     int64  `db:"storeid" json:"store_id"`
	ProductName string `db:"productname" json:"product_name"`
	Units       int    `db:"unitsrequested" json:"units"`
}
