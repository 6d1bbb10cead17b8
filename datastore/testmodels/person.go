package testmodels

import "github.com/suparena/dorm/mapping"

// Person is the reference entity: a generated int key and two fields.
type Person struct {
	ID   int
	Name string
	Age  int
}

func PersonMap() *mapping.EntityMap[Person] {
	m := mapping.New[Person]("person")
	m.ID("id", mapping.Ref(func(p *Person) *int { return &p.ID })).Generated(true)
	m.Field("name", mapping.Ref(func(p *Person) *string { return &p.Name }))
	m.Field("age", mapping.Ref(func(p *Person) *int { return &p.Age }))
	return m
}

// OrderLine is identified by two key columns, which no engine supports.
type OrderLine struct {
	OrderID  int
	Line     int
	Quantity int
}

func OrderLineMap() *mapping.EntityMap[OrderLine] {
	m := mapping.New[OrderLine]("order_line")
	m.ID("order_id", mapping.Ref(func(o *OrderLine) *int { return &o.OrderID }))
	m.ID("line", mapping.Ref(func(o *OrderLine) *int { return &o.Line }))
	m.Field("quantity", mapping.Ref(func(o *OrderLine) *int { return &o.Quantity }))
	return m
}
