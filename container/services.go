package container

import (
	"fmt"
	"time"

	"github.com/mustyfdn/app-portal/internal/svc/appsvc"
	"github.com/mustyfdn/app-portal/internal/svc/authsvc"
	"github.com/mustyfdn/app-portal/internal/svc/probesvc"
	"github.com/mustyfdn/app-portal/pkg/httpclient"
	"github.com/sony/sonyflake"
)

type Services interface {
	UIDGen() *sonyflake.Sonyflake
	App() appsvc.Service
	Auth() authsvc.Service
	Probe() probesvc.Service
}

type ServicesImpl struct {
	uidGen *sonyflake.Sonyflake
	app    appsvc.Service
	auth   authsvc.Service
	probe  probesvc.Service
}

var _ Services = (*ServicesImpl)(nil)

func SetupServices(conf Config, repos Repositories) (svc *ServicesImpl, err error) {
	if repos == nil {
		err = fmt.Errorf("nil repositories on services preparation")
		return
	}

	uidGen := sonyflake.NewSonyflake(sonyflake.Settings{
		StartTime:      time.Date(2022, 9, 23, 0, 0, 0, 0, time.UTC),
		MachineID:      nil,
		CheckMachineID: nil,
	})

	if uidGen == nil {
		err = fmt.Errorf("uid generator is nil")
		return
	}

	// ** Prepare catalog service at once
	appService, err := appsvc.New(appsvc.DefaultServiceConfig{
		AppRepo: repos.AppRepo(),
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare app service: %w", err)
		return
	}

	// ** Prepare session service at once
	authService, err := authsvc.New(authsvc.DefaultServiceConfig{
		AdminUsername: conf.AdminUsername,
		AdminPassword: conf.AdminPassword,
		SessionSecret: conf.SessionSecret,
		SessionTTL:    conf.SessionTTL,
		Sessions:      repos.SessionRepo(),
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare auth service: %w", err)
		return
	}

	// ** Prepare health relay service
	probeClient, err := httpclient.New(httpclient.Config{
		Timeout: conf.ProbeTimeout,
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare probe http client: %w", err)
		return
	}

	probeService, err := probesvc.New(probesvc.DefaultServiceConfig{
		Client: probeClient,
	})
	if err != nil {
		err = fmt.Errorf("services cannot prepare probe service: %w", err)
		return
	}

	svc = &ServicesImpl{
		uidGen: uidGen,
		app:    appService,
		auth:   authService,
		probe:  probeService,
	}

	return svc, nil
}

func (s *ServicesImpl) UIDGen() *sonyflake.Sonyflake {
	return s.uidGen
}

func (s *ServicesImpl) App() appsvc.Service {
	return s.app
}

func (s *ServicesImpl) Auth() authsvc.Service {
	return s.auth
}

func (s *ServicesImpl) Probe() probesvc.Service {
	return s.probe
}
