package cfgx_test

import (
	"fmt"
	"log"
	"time"

	"github.com/hengadev/cfgx"
	"github.com/hengadev/cfgx/node"
)

type Endpoint struct {
	Host string
	Port uint16
}

type Server struct {
	Name      string
	Timeout   time.Duration
	Endpoints []Endpoint
	Extra     []any
}

func Example() {
	engine, err := cfgx.New()
	if err != nil {
		log.Fatal(err)
	}

	data, err := engine.Marshal(Server{
		Name:      "api",
		Timeout:   2 * time.Second,
		Endpoints: []Endpoint{{Host: "localhost", Port: 8080}},
		Extra:     []any{1, "two", 3.0},
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))

	var restored Server
	if err := engine.Unmarshal(data, &restored); err != nil {
		log.Fatal(err)
	}
	fmt.Println(restored.Timeout, restored.Endpoints[0].Port, restored.Extra)
	// Output:
	// name: api
	// timeout:
	//   duration: 2s
	// endpoints:
	//   - host: localhost
	//     port: 8080
	// extra:
	//   - !int 1
	//   - !string "two"
	//   - !float64 3.0
	// 2s 8080 [1 two 3]
}

type Celsius float64

func ExampleRegisterHandler() {
	engine, err := cfgx.New()
	if err != nil {
		log.Fatal(err)
	}

	err = cfgx.RegisterHandler(engine,
		func(c Celsius) (*node.Mapping, error) {
			return node.NewMapping(1).Set("celsius", node.String(fmt.Sprintf("%.1f C", float64(c)))), nil
		},
		func(m *node.Mapping) (Celsius, error) {
			s, _ := m.GetString("celsius")
			var v float64
			_, err := fmt.Sscanf(s, "%f C", &v)
			return Celsius(v), err
		},
	)
	if err != nil {
		log.Fatal(err)
	}

	data, err := engine.Marshal(map[string]Celsius{"office": 21.5})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(string(data))
	// Output:
	// office:
	//   celsius: 21.5 C
}
