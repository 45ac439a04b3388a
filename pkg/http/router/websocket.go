package router

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gobwas/ws"
	"github.com/lintang-b-s/campusnav/pkg/concurrent"
	"github.com/lintang-b-s/campusnav/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/campusnav/pkg/http/server"
	"github.com/mailru/easygo/netpoll"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// handleWebsocket. live tracking sessions on config.WebsocketPort until ctx is done.
// connections are watched with netpoll (epoll/kqueue) and served by a bounded goroutine pool.
func (api *API) handleWebsocket(ctx context.Context, config http_server.Config,
	routingService controllers.RoutingService, trackingService controllers.TrackingService,
	errChan chan error,
) {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", config.WebsocketPort))
	if err != nil {
		errChan <- err
		return
	}
	api.log.Info(fmt.Sprintf("live tracking websocket API run on port %d", config.WebsocketPort))

	acceptDesc, err := netpoll.HandleListener(ln, netpoll.EventRead|netpoll.EventOneShot)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	api.poller, err = netpoll.New(nil)
	if err != nil {
		ln.Close()
		errChan <- err
		return
	}

	viper.SetDefault("WEBSOCKET_POOL_SIZE", 128)
	viper.SetDefault("WEBSOCKET_POOL_QUEUE", 16)
	api.pool = concurrent.NewGoroutinePool(viper.GetInt("WEBSOCKET_POOL_SIZE"), viper.GetInt("WEBSOCKET_POOL_QUEUE"))

	api.hub = controllers.NewHub(api.pool, routingService, trackingService)

	api.pool.Spawn(8)
	// accept is a channel to signal about next incoming connection Accept() results.
	accept := make(chan error, 1)

	api.poller.Start(acceptDesc, func(ev netpoll.Event) {
		defer api.poller.Resume(acceptDesc)
		err := api.pool.ScheduleTimeout(time.Millisecond, func() {
			conn, err := ln.Accept()
			if err != nil {
				accept <- err
				return
			}

			accept <- nil
			api.handle(conn)
		})
		if err == nil {
			err = <-accept
		}
		if err != nil {
			// pool busy or temporary accept failure: cool down before the next accept
			if errors.Is(err, concurrent.ErrScheduleTimeout) {
				time.Sleep(5 * time.Millisecond)
				return
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				time.Sleep(5 * time.Millisecond)
				return
			}
			if errors.Is(err, net.ErrClosed) {
				return
			}
			api.log.Error("accept error", zap.Error(err))
		}
	})

	<-ctx.Done()

	ln.Close()

	api.hub.RemoveAllUser()
	api.poller.Stop(acceptDesc)

	api.pool.Close()

	api.log.Info("websocket server stopped")
}

// handle. upgrade conn and register its read events. each ready message is served by the goroutine pool,
// so idle connections cost no goroutine.
func (api *API) handle(conn net.Conn) {
	br := bufio.NewReader(conn)

	rw := struct {
		io.Reader
		io.Writer
	}{br, conn}

	hs, err := ws.Upgrade(rw)
	if err != nil {
		api.log.Info("upgrade error", zap.Error(err), zap.String("connection", nameConn(conn)))
		conn.Close()
		return
	}

	api.log.Info("established websocket connection", zap.String("connection", nameConn(conn)),
		zap.String("protocol", hs.Protocol))

	user := api.hub.Register(conn)

	desc, err := netpoll.HandleRead(conn)
	if err != nil {
		api.log.Error("netpoll handle read", zap.Error(err))
		api.hub.Remove(user)
		conn.Close()
		return
	}

	api.poller.Start(desc, func(ev netpoll.Event) {
		if ev&(netpoll.EventReadHup|netpoll.EventHup) != 0 {
			// peer closed its end
			api.log.Info("user disconnected from websocket server", zap.String("connection", nameConn(conn)))

			api.poller.Stop(desc)
			api.hub.Remove(user)
			return
		}

		err := api.pool.Schedule(func() {
			if err := user.HandleRequest(); err != nil {
				api.log.Info("closing websocket connection", zap.Error(err))
				api.poller.Stop(desc)
				api.hub.Remove(user)
			}
		})
		if err != nil {
			api.log.Error("schedule websocket request", zap.Error(err))
		}
	})
}

func nameConn(conn net.Conn) string {
	return conn.LocalAddr().String() + " > " + conn.RemoteAddr().String()
}
