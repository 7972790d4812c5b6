package resources

// Built-in sample data loaded when a server starts without seed files.

func SampleOrders() map[string]Order {
	return map[string]Order{
		"todo1": {Task: "build an API"},
		"todo2": {Task: "?????"},
		"todo3": {Task: "profit!"},
	}
}

func SampleGoods() map[string]Good {
	return map[string]Good{
		"todo1": {Task: "build an API"},
		"todo2": {Task: "?????"},
		"todo3": {Task: "profit!"},
	}
}

func SampleMeasurements() map[string]Measurement {
	return map[string]Measurement{
		"uuid16-1": {
			Name:             "Илья",
			Phone:            "+79621671488",
			Email:            "test@mail.ru",
			Type:             "doors",
			Cart:             map[string]any{},
			Address:          "Тула, Матросова-Комбайновая",
			IP:               "255.255.255.254",
			GeoFromIP:        "Tula region",
			RegistrationDate: "Sun 27 Sep 2020 19:19:22 MSK",
		},
		"uuid16-2": {
			Name:             "Илья",
			Phone:            "+79621671489",
			Email:            "test2@mail.ru",
			Type:             "buildings",
			Cart:             map[string]any{},
			Address:          "Тула, Советская",
			IP:               "255.255.255.253",
			GeoFromIP:        "Tula region",
			RegistrationDate: "Sun 27 Sep 2020 19:19:23 MSK",
		},
		"uuid16-3": {
			Name:             "Илья",
			Phone:            "+79621671490",
			Email:            "test3@mail.ru",
			Type:             "doors",
			Cart:             map[string]any{},
			Address:          "Тула, Ленина",
			IP:               "255.255.255.252",
			GeoFromIP:        "Tula region",
			RegistrationDate: "Sun 27 Sep 2020 19:19:24 MSK",
		},
	}
}

func SampleBuyings() map[string]Buying {
	return map[string]Buying{
		"uuid16-1": {Name: "Google Adwords", Qty: "1", Category: "advertisment", Price: "50000", Date: "Sun 27 Sep 2020 14:24:01 MSK"},
		"uuid16-2": {Name: "Workers", Qty: "3", Category: "employees", Price: "7500", Date: "Sun 27 Sep 2020 14:24:01 MSK"},
		"uuid16-3": {Name: "Repair a PS4", Qty: "1", Category: "repairments", Price: "359", Date: "Sun 27 Sep 2020 14:24:01 MSK"},
	}
}

func SampleUsers() map[string]User {
	user := User{
		Name:             "Пётр Иванов",
		Phone:            "+7(960)5051883",
		Email:            "test@gmail.com",
		Address:          "Тула, Красина, 15/2",
		IP:               "14.88.359.282",
		GeoForIP:         "Tula region",
		Role:             "buyer",
		Active:           "active",
		RegistrationDate: "Sun 27 Sep 2020 14:24:01 MSK",
	}
	return map[string]User{
		"uuid16-1": user,
		"uuid16-2": user,
		"uuid16-3": user,
	}
}
